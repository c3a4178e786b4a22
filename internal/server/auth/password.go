// Package auth implements the credential primitives the server relies on:
// bcrypt password hashing, HS256 session tokens, and one-time secrets for
// password reset and email verification.
package auth

import "golang.org/x/crypto/bcrypt"

// passwordHashCost trades hashing speed for brute-force resistance.
const passwordHashCost = 12

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(password []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(password, passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether candidate matches the stored bcrypt hash.
// The comparison is delegated to bcrypt; raw strings are never compared.
func CheckPassword(hash string, candidate []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), candidate) == nil
}
