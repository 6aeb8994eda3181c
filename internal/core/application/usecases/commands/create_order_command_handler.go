package commands

import (
	"context"
	"time"

	"pressing/internal/core/domain/model/catalog"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"
	"pressing/internal/pkg/errs"
)

// CreateOrderCommandHandler places a new order at the caller's pressing.
//
// Within one transaction it checks the client, applies the pressing minimum,
// provisions a catalog item for every new label, allocates the daily
// reference code and stores the order in CREATED status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
	pricer     services.OrderPricer
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		pricer:     services.NewOrderPricer(),
	}
}

// Handle returns the id of the created order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.ID{}, err
	}

	pressingID, err := h.policy.OrderCreationPressing(cmd.Actor())
	if err != nil {
		return kernel.ID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.ID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	directory := uow.Directory()
	belongs, err := directory.ClientBelongsToPressing(ctx, cmd.ClientID(), pressingID)
	if err != nil {
		return kernel.ID{}, err
	}
	if !belongs {
		return kernel.ID{}, errs.NewObjectNotFoundError("clientId", cmd.ClientID())
	}

	minimum, err := directory.PressingMinimumOrderAmount(ctx, pressingID)
	if err != nil {
		return kernel.ID{}, err
	}

	items := cmd.Items()
	if _, err = h.pricer.Quote(items, minimum); err != nil {
		return kernel.ID{}, err
	}

	catalogRepo := uow.CatalogRepository()
	for _, item := range items {
		candidate, itemErr := catalog.NewItem(kernel.NewID(), pressingID, item.Label(), item.UnitPrice())
		if itemErr != nil {
			return kernel.ID{}, itemErr
		}
		if _, err = catalogRepo.AddIfAbsent(ctx, candidate); err != nil {
			return kernel.ID{}, err
		}
	}

	now := time.Now().UTC()
	orderRepo := uow.OrderRepository()
	sequence, err := orderRepo.NextReferenceSequence(ctx, pressingID, now)
	if err != nil {
		return kernel.ID{}, err
	}

	code, err := order.NewReferenceCode(pressingID, now, sequence)
	if err != nil {
		return kernel.ID{}, err
	}

	o, err := order.NewOrder(kernel.NewID(), code, pressingID, cmd.ClientID(), items, cmd.Actor().User(), now)
	if err != nil {
		return kernel.ID{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return kernel.ID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.ID{}, err
	}

	return o.ID(), nil
}
