package queries

import (
	"context"

	"pressing/internal/core/domain/services"
	"pressing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler returns an order with its items, history and payment
// when it lies within the caller's scope.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(actor, orderID)
//
//	o, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown id
//	}
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	orders, err := readOrders(ctx, h.db, "o.id = ?", "", query.OrderID().Int64())
	if err != nil {
		return OrderResponse{}, err
	}
	if len(orders) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if err = h.policy.CanViewOrder(query.Actor(), orders[0].Scope()); err != nil {
		return OrderResponse{}, err
	}
	return orders[0], nil
}
