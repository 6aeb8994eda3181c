package commands

import (
	"context"
	"errors"

	"pressing/internal/core/domain/model/catalog"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/services"
	"pressing/internal/pkg/errs"
)

// CreateCatalogItemCommandHandler adds an item to the caller's pressing
// catalog. A case-insensitive label collision is a conflict.
type CreateCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	policy     services.AccessPolicy
}

func NewCreateCatalogItemCommandHandler(uowFactory CatalogUoWFactory) CreateCatalogItemCommandHandler {
	return CreateCatalogItemCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

func (h *CreateCatalogItemCommandHandler) Handle(ctx context.Context, cmd CreateCatalogItemCommand) (*catalog.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	pressingID, err := h.policy.ResolvePressingScope(cmd.Actor(), cmd.PressingID())
	if err != nil {
		return nil, err
	}

	item, err := catalog.NewItem(kernel.NewID(), pressingID, cmd.Label(), cmd.Price())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	if err = ensureLabelIsFree(ctx, repo, item); err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}

type labelFinder interface {
	FindByLabel(ctx context.Context, pressingID kernel.ID, label string) (*catalog.Item, error)
}

// ensureLabelIsFree rejects item when another row of its pressing already
// carries the same normalized label. The unique index backs this check up
// against concurrent writers.
func ensureLabelIsFree(ctx context.Context, repo labelFinder, item *catalog.Item) error {
	existing, err := repo.FindByLabel(ctx, item.PressingID(), item.Label())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID().IsEqual(item.ID()) {
		return nil
	}
	return errs.NewConflictErrorWithCause("catalog item", existing.ID(),
		errs.NewValueIsInvalidError("label"))
}
