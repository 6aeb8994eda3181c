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
	ErrBulkTransitionOrderStatusCommandIsNotConstructed = errors.New(
		"BulkTransitionOrderStatusCommand must be created via NewBulkTransitionOrderStatusCommand constructor",
	)
)

// BulkTransitionOrderStatusCommand moves a set of orders sharing one status
// to the same target. Order ids must be distinct.
type BulkTransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	actor    identity.Actor
	orderIDs []kernel.ID
	target   order.Status
	plantID  *kernel.ID

	guard guard.ConstructorGuard
}

func NewBulkTransitionOrderStatusCommand(
	actor identity.Actor,
	orderIDs []kernel.ID,
	target order.Status,
	plantID *kernel.ID,
) (BulkTransitionOrderStatusCommand, error) {
	cmd := BulkTransitionOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderIDs(orderIDs),
		cmd.setTarget(target),
		cmd.setPlantID(plantID),
	); err != nil {
		return BulkTransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c BulkTransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionOrderStatusCommandIsNotConstructed)
}

func (c BulkTransitionOrderStatusCommand) Actor() identity.Actor {
	return c.actor
}

func (c BulkTransitionOrderStatusCommand) OrderIDs() []kernel.ID {
	ids := make([]kernel.ID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

func (c BulkTransitionOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c BulkTransitionOrderStatusCommand) PlantID() *kernel.ID {
	return c.plantID
}

func (c *BulkTransitionOrderStatusCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *BulkTransitionOrderStatusCommand) setOrderIDs(ids []kernel.ID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}

	seen := make(map[int64]struct{}, len(ids))
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("orderIds[%d]", i), err)
		}
		if _, ok := seen[id.Int64()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("orderIds",
				fmt.Errorf("order %s is listed more than once", id))
		}
		seen[id.Int64()] = struct{}{}
	}

	c.orderIDs = make([]kernel.ID, len(ids))
	copy(c.orderIDs, ids)
	return nil
}

func (c *BulkTransitionOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *BulkTransitionOrderStatusCommand) setPlantID(id *kernel.ID) error {
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
