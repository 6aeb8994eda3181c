package errs

import (
	"errors"
	"fmt"
)

var ErrPaymentNotAllowed = errors.New("payment is not allowed")

// PaymentNotAllowedError carries the business reason as Cause, so both
// errors.Is(err, ErrPaymentNotAllowed) and errors.Is(err, reason) hold.
type PaymentNotAllowedError struct {
	OrderID any
	Cause   error
}

func NewPaymentNotAllowedError(orderID any, reason error) *PaymentNotAllowedError {
	return &PaymentNotAllowedError{
		OrderID: orderID,
		Cause:   reason,
	}
}

func (e *PaymentNotAllowedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %v (cause: %v)", ErrPaymentNotAllowed, e.OrderID, e.Cause)
	}
	return fmt.Sprintf("%s: order %v", ErrPaymentNotAllowed, e.OrderID)
}

func (e *PaymentNotAllowedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrPaymentNotAllowed, e.Cause}
	}
	return []error{ErrPaymentNotAllowed}
}
