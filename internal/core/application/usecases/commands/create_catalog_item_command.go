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
	ErrCreateCatalogItemCommandIsNotConstructed = errors.New(
		"CreateCatalogItemCommand must be created via NewCreateCatalogItemCommand constructor",
	)
)

// CreateCatalogItemCommand adds a (label, price) entry to a pressing catalog.
// PressingID is only honoured for administrators; supervisors are pinned to
// their own pressing.
type CreateCatalogItemCommand struct { //nolint:recvcheck //using for validation
	actor      identity.Actor
	pressingID *kernel.ID
	label      string
	price      kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateCatalogItemCommand(
	actor identity.Actor,
	pressingID *kernel.ID,
	label string,
	price kernel.Money,
) (CreateCatalogItemCommand, error) {
	cmd := CreateCatalogItemCommand{
		pressingID: pressingID,
		price:      price,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setLabel(label),
	); err != nil {
		return CreateCatalogItemCommand{}, err
	}

	return cmd, nil
}

func (c CreateCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateCatalogItemCommandIsNotConstructed)
}

func (c CreateCatalogItemCommand) Actor() identity.Actor {
	return c.actor
}

func (c CreateCatalogItemCommand) PressingID() *kernel.ID {
	return c.pressingID
}

func (c CreateCatalogItemCommand) Label() string {
	return c.label
}

func (c CreateCatalogItemCommand) Price() kernel.Money {
	return c.price
}

func (c *CreateCatalogItemCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateCatalogItemCommand) setLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errs.NewValueIsRequiredError("label")
	}
	c.label = label
	return nil
}
