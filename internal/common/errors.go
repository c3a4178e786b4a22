// Package common defines shared constants and sentinel errors used across
// the client and server layers. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorConflict     = errors.New("already exists")
	ErrorForbidden    = errors.New("forbidden")

	// Auth errors (invalid, malformed or expired token; the caller must not
	// be able to tell the cases apart).
	ErrInvalidToken = errors.New("invalid token")

	// One-time secret lifecycle.
	ErrSecretExpired = errors.New("secret expired")
)

// ValidationError carries a user-facing message for a 400-class failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// AsValidation reports whether err is a ValidationError and returns it.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
