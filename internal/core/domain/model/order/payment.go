package order

import (
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

var (
	ErrNotDelivered = errors.New("order has not been delivered yet")
	ErrAlreadyPaid  = errors.New("order already has a payment")
)

// PaymentMethod is the fixed set of accepted payment methods.
type PaymentMethod int

const (
	UnknownMethod PaymentMethod = iota
	Cash
	Card
	MobileMoney
	BankTransfer
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		UnknownMethod: "UNKNOWN",
		Cash:          "CASH",
		Card:          "CARD",
		MobileMoney:   "MOBILE_MONEY",
		BankTransfer:  "BANK_TRANSFER",
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if method != UnknownMethod && name == s {
			return method, nil
		}
	}
	return UnknownMethod, errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a supported payment method", s))
}

func (m PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[m]; ok {
		return s
	}
	return "UNKNOWN"
}

func (m PaymentMethod) Validate() error {
	if m <= UnknownMethod || m > BankTransfer {
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%d is not a supported payment method", m))
	}
	return nil
}

// PaymentStatus moves from Initiated to Paid inside a single recordPayment
// call; only Paid is ever persisted.
type PaymentStatus int

const (
	Initiated PaymentStatus = iota + 1
	Paid
)

func (s PaymentStatus) String() string {
	switch s {
	case Initiated:
		return "INITIATED"
	case Paid:
		return "PAID"
	default:
		return "UNKNOWN"
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch s {
	case "INITIATED":
		return Initiated, nil
	case "PAID":
		return Paid, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not a valid payment status", s))
	}
}

// Payment settles a delivered order. Its amount is always the order total.
type Payment struct {
	id      kernel.ID
	orderID kernel.ID
	amount  kernel.Money
	method  PaymentMethod
	status  PaymentStatus
	paidAt  time.Time
}

func newPayment(id, orderID kernel.ID, amount kernel.Money, method PaymentMethod, now time.Time) (*Payment, error) {
	if err := errors.Join(id.Validate(), method.Validate()); err != nil {
		return nil, err
	}

	p := &Payment{
		id:      id,
		orderID: orderID,
		amount:  amount,
		method:  method,
		status:  Initiated,
	}
	p.markPaid(now)
	return p, nil
}

func RestorePayment(
	id, orderID kernel.ID, amount kernel.Money, method PaymentMethod, status PaymentStatus, paidAt time.Time,
) (*Payment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), method.Validate()); err != nil {
		return nil, err
	}
	if status != Paid {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%s is not a persisted status", status))
	}

	return &Payment{
		id:      id,
		orderID: orderID,
		amount:  amount,
		method:  method,
		status:  status,
		paidAt:  paidAt,
	}, nil
}

func (p *Payment) markPaid(now time.Time) {
	p.status = Paid
	p.paidAt = now
}

func (p *Payment) ID() kernel.ID {
	return p.id
}

func (p *Payment) OrderID() kernel.ID {
	return p.orderID
}

func (p *Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) Method() PaymentMethod {
	return p.method
}

func (p *Payment) Status() PaymentStatus {
	return p.status
}

func (p *Payment) PaidAt() time.Time {
	return p.paidAt
}
