package commands

import (
	"context"
	"time"

	"pressing/internal/core/domain/services"
)

// BulkTransitionOrderStatusCommandHandler applies one transition to a set of
// orders atomically: every order is locked, checked and planned before the
// first one is changed, and any failure rolls the whole batch back.
type BulkTransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	planner    services.BatchPlanner
}

func NewBulkTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) BulkTransitionOrderStatusCommandHandler {
	return BulkTransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		planner:    services.NewBatchPlanner(),
	}
}

// Handle returns the number of orders moved.
func (h *BulkTransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd BulkTransitionOrderStatusCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetManyForUpdate(ctx, cmd.OrderIDs())
	if err != nil {
		return 0, err
	}

	actor := cmd.Actor()
	for _, o := range orders {
		if err = h.policy.CanTransition(actor, o); err != nil {
			return 0, err
		}
	}

	if err = h.planner.Plan(orders, cmd.Target(), actor.Role()); err != nil {
		return 0, err
	}

	plantID, err := resolvePlant(ctx, h.policy, uow, cmd)
	if err != nil {
		return 0, err
	}

	for _, o := range orders {
		if err = o.Transition(actor, cmd.Target(), plantID, time.Now().UTC()); err != nil {
			return 0, err
		}
	}

	for _, o := range orders {
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(orders), nil
}
