package commands

import (
	"context"
	"time"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"
	"pressing/internal/pkg/errs"
)

// TransitionOrderStatusCommandHandler moves a single order one stage forward.
//
// Steps, all within one transaction:
//  1. load and lock the order
//  2. check the order is within the actor's scope
//  3. check the target against the role's transition table
//  4. resolve and verify the plant when receiving at a plant
//  5. apply the transition and write it with a compare-and-swap on status
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

func (h *TransitionOrderStatusCommandHandler) Handle(ctx context.Context, cmd TransitionOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor := cmd.Actor()
	if err = h.policy.CanTransition(actor, o); err != nil {
		return err
	}
	if err = order.CheckTransition(o.Status(), cmd.Target(), actor.Role()); err != nil {
		return err
	}

	plantID, err := resolvePlant(ctx, h.policy, uow, cmd)
	if err != nil {
		return err
	}

	if err = o.Transition(actor, cmd.Target(), plantID, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type plantRequest interface {
	Actor() identity.Actor
	Target() order.Status
	PlantID() *kernel.ID
}

// resolvePlant applies the plant rules of RECEIVED_AT_PLANT and checks that
// the resulting plant exists.
func resolvePlant(
	ctx context.Context,
	policy services.AccessPolicy,
	uow DirectoryFactory,
	req plantRequest,
) (*kernel.ID, error) {
	plantID, err := policy.ResolveTransitionPlant(req.Actor(), req.Target(), req.PlantID())
	if err != nil {
		return nil, err
	}
	if req.Target() != order.ReceivedAtPlant || plantID == nil {
		return plantID, nil
	}

	exists, err := uow.Directory().PlantExists(ctx, *plantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("plantId", *plantID)
	}
	return plantID, nil
}
