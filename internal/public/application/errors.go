package application

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the entity addressed by id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied indicates the principal may not mutate the entity.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAuthenticationFailed indicates a missing or invalid credential.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrConflict indicates a uniqueness violation such as a taken username.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports a malformed or missing field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
