package commands

import (
	"errors"
	"strings"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/guard"
)

var (
	ErrUpdateCatalogItemCommandIsNotConstructed = errors.New(
		"UpdateCatalogItemCommand must be created via NewUpdateCatalogItemCommand constructor",
	)
)

// UpdateCatalogItemCommand replaces the label and price of a catalog item.
// Existing orders keep the values they captured.
type UpdateCatalogItemCommand struct { //nolint:recvcheck //using for validation
	actor  identity.Actor
	itemID kernel.ID
	label  string
	price  kernel.Money

	guard guard.ConstructorGuard
}

func NewUpdateCatalogItemCommand(
	actor identity.Actor,
	itemID kernel.ID,
	label string,
	price kernel.Money,
) (UpdateCatalogItemCommand, error) {
	cmd := UpdateCatalogItemCommand{
		price: price,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setItemID(itemID),
		cmd.setLabel(label),
	); err != nil {
		return UpdateCatalogItemCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCatalogItemCommandIsNotConstructed)
}

func (c UpdateCatalogItemCommand) Actor() identity.Actor {
	return c.actor
}

func (c UpdateCatalogItemCommand) ItemID() kernel.ID {
	return c.itemID
}

func (c UpdateCatalogItemCommand) Label() string {
	return c.label
}

func (c UpdateCatalogItemCommand) Price() kernel.Money {
	return c.price
}

func (c *UpdateCatalogItemCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *UpdateCatalogItemCommand) setItemID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemId", err)
	}
	c.itemID = id
	return nil
}

func (c *UpdateCatalogItemCommand) setLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errs.NewValueIsRequiredError("label")
	}
	c.label = label
	return nil
}
