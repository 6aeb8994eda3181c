package commands

import (
	"context"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"
)

// RecordPaymentCommandHandler records the single payment of a delivered order.
// Plant operators are refused before the order is even loaded.
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
}

func NewRecordPaymentCommandHandler(uowFactory OrderUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*order.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanHandlePayments(cmd.Actor()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.CanRecordPayment(cmd.Actor(), o); err != nil {
		return nil, err
	}

	payment, err := o.RecordPayment(kernel.NewID(), cmd.Method(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return payment, nil
}
