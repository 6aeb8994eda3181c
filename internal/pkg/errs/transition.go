package errs

import (
	"errors"
	"fmt"
	"strings"
)

var ErrTransitionNotAllowed = errors.New("transition is not allowed")

// TransitionNotAllowedError describes a rejected status change. AllowedNext is
// empty when no transition is available from From for the given Role.
type TransitionNotAllowedError struct {
	From        string
	To          string
	Role        string
	AllowedNext string
	Cause       error
}

func NewTransitionNotAllowedError(from, to, role, allowedNext string) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{
		From:        from,
		To:          to,
		Role:        role,
		AllowedNext: allowedNext,
	}
}

func NewTransitionNotAllowedErrorWithCause(from, to, role, allowedNext string, cause error) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{
		From:        from,
		To:          to,
		Role:        role,
		AllowedNext: allowedNext,
		Cause:       cause,
	}
}

func (e *TransitionNotAllowedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s -> %s for %s", ErrTransitionNotAllowed, e.From, e.To, e.Role)
	if e.AllowedNext != "" {
		fmt.Fprintf(&b, ", allowed next status is %s", e.AllowedNext)
	} else {
		b.WriteString(", no transition is available")
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (cause: %v)", e.Cause)
	}
	return b.String()
}

func (e *TransitionNotAllowedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrTransitionNotAllowed, e.Cause}
	}
	return []error{ErrTransitionNotAllowed}
}
