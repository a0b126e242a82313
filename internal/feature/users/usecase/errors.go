// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("User not found")

	// ErrUserAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrUserAlreadyExists = errors.New("User already exists")

	// ErrInvalidCredentials is returned when login fails for a wrong password or an
	// unknown email. Both cases share one error so account existence is not disclosed.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrCacheMiss is returned by CacheRepository.Get when a key is absent.
	// A cache outage is reported the same way so reads degrade to the store.
	ErrCacheMiss = errors.New("cache miss")
)

// ValidationError reports input that failed schema validation.
// The message is safe to surface to the caller.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// newValidationError wraps a validator message into a ValidationError.
func newValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
