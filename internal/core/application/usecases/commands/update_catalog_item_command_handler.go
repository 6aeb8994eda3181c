package commands

import (
	"context"

	"pressing/internal/core/domain/model/catalog"
	"pressing/internal/core/domain/services"
)

type UpdateCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	policy     services.AccessPolicy
}

func NewUpdateCatalogItemCommandHandler(uowFactory CatalogUoWFactory) UpdateCatalogItemCommandHandler {
	return UpdateCatalogItemCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle updates the item in place. Renaming an item to its own label with a
// different case is allowed; taking another item's label is a conflict.
func (h *UpdateCatalogItemCommandHandler) Handle(ctx context.Context, cmd UpdateCatalogItemCommand) (*catalog.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	item, err := repo.Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	pressingID := item.PressingID()
	if _, err = h.policy.ResolvePressingScope(cmd.Actor(), &pressingID); err != nil {
		return nil, err
	}

	if err = item.Update(cmd.Label(), cmd.Price()); err != nil {
		return nil, err
	}

	if err = ensureLabelIsFree(ctx, repo, item); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
