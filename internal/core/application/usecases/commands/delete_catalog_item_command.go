package commands

import (
	"errors"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/guard"
)

var (
	ErrDeleteCatalogItemCommandIsNotConstructed = errors.New(
		"DeleteCatalogItemCommand must be created via NewDeleteCatalogItemCommand constructor",
	)
)

// DeleteCatalogItemCommand removes a catalog item. Orders never reference
// catalog rows, so nothing cascades.
type DeleteCatalogItemCommand struct { //nolint:recvcheck //using for validation
	actor  identity.Actor
	itemID kernel.ID

	guard guard.ConstructorGuard
}

func NewDeleteCatalogItemCommand(actor identity.Actor, itemID kernel.ID) (DeleteCatalogItemCommand, error) {
	cmd := DeleteCatalogItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setItemID(itemID),
	); err != nil {
		return DeleteCatalogItemCommand{}, err
	}

	return cmd, nil
}

func (c DeleteCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCatalogItemCommandIsNotConstructed)
}

func (c DeleteCatalogItemCommand) Actor() identity.Actor {
	return c.actor
}

func (c DeleteCatalogItemCommand) ItemID() kernel.ID {
	return c.itemID
}

func (c *DeleteCatalogItemCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *DeleteCatalogItemCommand) setItemID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	c.itemID = id
	return nil
}
