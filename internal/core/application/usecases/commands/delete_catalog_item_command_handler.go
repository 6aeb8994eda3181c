package commands

import (
	"context"

	"pressing/internal/core/domain/services"
)

type DeleteCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	policy     services.AccessPolicy
}

func NewDeleteCatalogItemCommandHandler(uowFactory CatalogUoWFactory) DeleteCatalogItemCommandHandler {
	return DeleteCatalogItemCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

func (h *DeleteCatalogItemCommandHandler) Handle(ctx context.Context, cmd DeleteCatalogItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	item, err := repo.Get(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	pressingID := item.PressingID()
	if _, err = h.policy.ResolvePressingScope(cmd.Actor(), &pressingID); err != nil {
		return err
	}

	if err = repo.Delete(ctx, item.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
