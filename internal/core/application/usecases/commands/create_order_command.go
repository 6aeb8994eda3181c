package commands

import (
	"errors"
	"fmt"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// OrderLine is one submitted line of a new order, before validation.
type OrderLine struct {
	Label     string
	Quantity  int
	UnitPrice kernel.Money
}

// CreateOrderCommand represents a request to place a new order at the
// caller's pressing. The pressing is never part of the request: it is taken
// from the actor's claims by the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, clientID, []OrderLine{
//	    {Label: "Shirt", Quantity: 3, UnitPrice: shirtPrice},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor    identity.Actor
	clientID kernel.ID
	items    []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every line and reports all violations at
// once, joined, so nothing is written for a partially valid request.
func NewCreateOrderCommand(actor identity.Actor, clientID kernel.ID, lines []OrderLine) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setClientID(clientID),
		cmd.setItems(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() identity.Actor {
	return c.actor
}

func (c CreateOrderCommand) ClientID() kernel.ID {
	return c.clientID
}

// Items returns the validated lines in submission order.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CreateOrderCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.ID) error {
	if err := clientID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setItems(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(lines))
	var lineErrs []error
	for i, line := range lines {
		item, err := order.NewItem(line.Label, line.Quantity, line.UnitPrice)
		if err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.items = items
	return nil
}
