package queries

import (
	"context"
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CatalogItemResponse struct {
	ID         kernel.ID
	PressingID kernel.ID
	Label      string
	Price      kernel.Money
}

// ListCatalogItemsQueryHandler returns a pressing's catalog ordered by label.
type ListCatalogItemsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

func NewListCatalogItemsQueryHandler(db *gorm.DB) ListCatalogItemsQueryHandler {
	return ListCatalogItemsQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

func (h ListCatalogItemsQueryHandler) Handle(
	ctx context.Context,
	query ListCatalogItemsQuery,
) ([]CatalogItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pressingID, err := h.policy.ResolvePressingScope(query.Actor(), query.PressingID())
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			label,
			price
		FROM catalog_items
		WHERE pressing_id = ?
		ORDER BY label_key, id
	`, pressingID.Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CatalogItemResponse, 0)
	for rows.Next() {
		var (
			id    int64
			price decimal.Decimal
			item  = CatalogItemResponse{PressingID: pressingID}
		)
		if err = rows.Scan(&id, &item.Label, &price); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.IDFromInt64(id)
		money, priceErr := kernel.NewMoney(price)
		if err = errors.Join(idErr, priceErr); err != nil {
			return nil, err
		}
		item.ID, item.Price = itemID, money
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
