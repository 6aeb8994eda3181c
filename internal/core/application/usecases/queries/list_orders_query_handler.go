package queries

import (
	"context"
	"strings"

	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists the orders of one scope:
//   - by-pressing: the orders of a pressing (supervisors, administrators)
//   - by-plant: the orders assigned to a plant (plant operators, administrators)
//   - collected: COLLECTED orders not yet received by any plant
//   - all: every order (administrators)
type ListOrdersQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)

	actor := query.Actor()
	switch query.Scope() {
	case ScopeByPressing:
		pressingID, err := h.policy.ResolvePressingScope(actor, query.PressingID())
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, "o.pressing_id = ?")
		args = append(args, pressingID.Int64())
	case ScopeByPlant:
		plantID, err := h.policy.ResolvePlantScope(actor, query.PlantID())
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, "o.plant_id = ?")
		args = append(args, plantID.Int64())
	case ScopeCollected:
		if err := h.policy.CanListCollected(actor); err != nil {
			return nil, err
		}
		conditions = append(conditions, "o.status = ?", "o.plant_id IS NULL")
		args = append(args, int(order.Collected))
	case ScopeAll:
		if err := h.policy.CanListAll(actor); err != nil {
			return nil, err
		}
	}

	if status := query.Status(); status != nil {
		conditions = append(conditions, "o.status = ?")
		args = append(args, int(*status))
	}

	return readOrders(ctx, h.db, strings.Join(conditions, " AND "), "ORDER BY o.created_at DESC, o.id DESC", args...)
}
