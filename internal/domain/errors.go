package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across domain services. Handlers map these onto the
// HTTP response envelope in internal/api/respond.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrDuplicate reports a storage-level uniqueness violation. The unique
	// indexes back the duplicate-prevention invariants even when two
	// requests pass a pre-check concurrently.
	ErrDuplicate = errors.New("duplicate key")
)

// ValidationError reports malformed or missing input, citing the offending
// field when one is known.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// ConflictError reports a uniqueness violation, such as a duplicate admin
// email or a second application to the same internship.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string { return e.Message }

func Conflict(message string) ConflictError {
	return ConflictError{Message: message}
}

// ExternalServiceError wraps a failure from the object store or the mail
// gateway. Required marks whether the failed call blocked the operation.
type ExternalServiceError struct {
	Service  string
	Required bool
	Err      error
}

func (e ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e ExternalServiceError) Unwrap() error { return e.Err }
