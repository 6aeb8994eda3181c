package queries

import (
	"errors"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/guard"
)

var ErrListCatalogItemsQueryIsNotConstructed = errors.New(
	"ListCatalogItemsQuery must be created via NewListCatalogItemsQuery constructor",
)

// ListCatalogItemsQuery lists the catalog of one pressing. PressingID is
// honoured for administrators only.
type ListCatalogItemsQuery struct {
	actor      identity.Actor
	pressingID *kernel.ID

	guard guard.ConstructorGuard
}

func NewListCatalogItemsQuery(actor identity.Actor, pressingID *kernel.ID) (ListCatalogItemsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListCatalogItemsQuery{}, err
	}
	return ListCatalogItemsQuery{
		actor:      actor,
		pressingID: pressingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCatalogItemsQuery) Validate() error {
	return q.guard.Validate(ErrListCatalogItemsQueryIsNotConstructed)
}

func (q ListCatalogItemsQuery) Actor() identity.Actor {
	return q.actor
}

func (q ListCatalogItemsQuery) PressingID() *kernel.ID {
	return q.pressingID
}
