package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity id does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidTransition is returned when approving or rejecting a
	// request that is already in a terminal state.
	ErrInvalidTransition = errors.New("request is not pending")

	// ErrPermissionDenied is returned when the actor lacks approval
	// capability over the target scope.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError reports a bad field value on a submitted request. The
// caller can fix the field and resubmit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the named field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
