// Package catalogrepo persists the per-pressing catalog of prefilled order lines.
package catalogrepo

import (
	"errors"

	"pressing/internal/core/domain/model/catalog"
	"pressing/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CatalogItemDTO represents the catalog_items table. LabelKey carries the
// normalized label the per-pressing unique index is built on.
type CatalogItemDTO struct {
	ID         int64           `gorm:"primaryKey;autoIncrement:false"`
	PressingID int64           `gorm:"not null;uniqueIndex:idx_catalog_pressing_label"`
	Label      string          `gorm:"size:120;not null"`
	LabelKey   string          `gorm:"size:120;not null;uniqueIndex:idx_catalog_pressing_label"`
	Price      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (CatalogItemDTO) TableName() string {
	return "catalog_items"
}

func fromDomain(item *catalog.Item) CatalogItemDTO {
	return CatalogItemDTO{
		ID:         item.ID().Int64(),
		PressingID: item.PressingID().Int64(),
		Label:      item.Label(),
		LabelKey:   item.LabelKey(),
		Price:      item.Price().Amount(),
	}
}

func toDomain(dto CatalogItemDTO) (*catalog.Item, error) {
	id, idErr := kernel.IDFromInt64(dto.ID)
	pressingID, pressingErr := kernel.IDFromInt64(dto.PressingID)
	price, priceErr := kernel.NewMoney(dto.Price)
	if err := errors.Join(idErr, pressingErr, priceErr); err != nil {
		return nil, err
	}
	return catalog.RestoreItem(id, pressingID, dto.Label, price)
}
