package commands

import (
	"errors"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/guard"
)

var (
	ErrRecordPaymentCommandIsNotConstructed = errors.New(
		"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
	)
)

// RecordPaymentCommand settles a delivered order. The amount is never part
// of the request; it is always the order total.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	actor   identity.Actor
	orderID kernel.ID
	method  order.PaymentMethod

	guard guard.ConstructorGuard
}

func NewRecordPaymentCommand(
	actor identity.Actor,
	orderID kernel.ID,
	method order.PaymentMethod,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setMethod(method),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

func (c RecordPaymentCommand) Actor() identity.Actor {
	return c.actor
}

func (c RecordPaymentCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c RecordPaymentCommand) Method() order.PaymentMethod {
	return c.method
}

func (c *RecordPaymentCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *RecordPaymentCommand) setOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}

func (c *RecordPaymentCommand) setMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.method = method
	return nil
}
