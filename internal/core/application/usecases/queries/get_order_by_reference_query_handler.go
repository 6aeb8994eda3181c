package queries

import (
	"context"

	"pressing/internal/core/domain/services"
	"pressing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderByReferenceQueryHandler applies the same access rules as GetOrderQueryHandler.
type GetOrderByReferenceQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewGetOrderByReferenceQueryHandler(db *gorm.DB) GetOrderByReferenceQueryHandler {
	return GetOrderByReferenceQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

func (h GetOrderByReferenceQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByReferenceQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	code := query.ReferenceCode().String()
	orders, err := readOrders(ctx, h.db, "o.reference_code = ?", "", code)
	if err != nil {
		return OrderResponse{}, err
	}
	if len(orders) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("referenceCode", code)
	}

	if err = h.policy.CanViewOrder(query.Actor(), orders[0].Scope()); err != nil {
		return OrderResponse{}, err
	}
	return orders[0], nil
}
