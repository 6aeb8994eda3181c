package errs

import (
	"errors"
	"fmt"
)

var ErrConflict = errors.New("conflicting concurrent write")

// ConflictError is a retryable failure: another writer changed Resource first.
type ConflictError struct {
	Resource string
	ID       any
	Cause    error
}

func NewConflictError(resource string, id any) *ConflictError {
	return &ConflictError{
		Resource: resource,
		ID:       id,
	}
}

func NewConflictErrorWithCause(resource string, id any, cause error) *ConflictError {
	return &ConflictError{
		Resource: resource,
		ID:       id,
		Cause:    cause,
	}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %v (cause: %v)", ErrConflict, e.Resource, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v", ErrConflict, e.Resource, e.ID)
}

func (e *ConflictError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConflict, e.Cause}
	}
	return []error{ErrConflict}
}
