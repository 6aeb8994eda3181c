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
	ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
		"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
	)
)

// TransitionOrderStatusCommand moves one order to its next stage.
// PlantID is only meaningful for RECEIVED_AT_PLANT.
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor   identity.Actor
	orderID kernel.ID
	target  order.Status
	plantID *kernel.ID

	guard guard.ConstructorGuard
}

func NewTransitionOrderStatusCommand(
	actor identity.Actor,
	orderID kernel.ID,
	target order.Status,
	plantID *kernel.ID,
) (TransitionOrderStatusCommand, error) {
	cmd := TransitionOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setPlantID(plantID),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) Actor() identity.Actor {
	return c.actor
}

func (c TransitionOrderStatusCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c TransitionOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c TransitionOrderStatusCommand) PlantID() *kernel.ID {
	return c.plantID
}

func (c *TransitionOrderStatusCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *TransitionOrderStatusCommand) setOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionOrderStatusCommand) setPlantID(id *kernel.ID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("plantId", err)
	}
	plantID := *id
	c.plantID = &plantID
	return nil
}
