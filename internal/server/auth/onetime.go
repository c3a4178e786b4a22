package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/orionapp/companion/internal/common"
)

// One-time secrets back the password-reset and email-verification flows.
// The plaintext is handed to the user exactly once (embedded in a link);
// only its SHA-256 digest is persisted, alongside an expiry.

// NewOneTimeSecret returns the plaintext secret to give the user and the
// hash to store.
func NewOneTimeSecret() (plaintext string, hash string, err error) {
	plaintext, err = common.MakeRandHexString(32)
	if err != nil {
		return "", "", err
	}
	return plaintext, HashOneTimeSecret(plaintext), nil
}

// HashOneTimeSecret derives the stored form of a one-time secret. Lookups
// re-hash the user-supplied value and compare digests, so the plaintext is
// never persisted.
func HashOneTimeSecret(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
