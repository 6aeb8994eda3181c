package errs

import (
	"errors"
	"fmt"
)

var ErrForbidden = errors.New("access is forbidden")

// ForbiddenError is returned when the caller's role or scope does not cover
// the requested action.
type ForbiddenError struct {
	Action string
	Cause  error
}

func NewForbiddenError(action string) *ForbiddenError {
	return &ForbiddenError{Action: action}
}

func NewForbiddenErrorWithCause(action string, cause error) *ForbiddenError {
	return &ForbiddenError{
		Action: action,
		Cause:  cause,
	}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrForbidden, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Action)
}

func (e *ForbiddenError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrForbidden, e.Cause}
	}
	return []error{ErrForbidden}
}
