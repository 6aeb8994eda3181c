package ports

import (
	"context"

	"pressing/internal/core/domain/model/catalog"
	"pressing/internal/core/domain/model/kernel"
)

// CatalogRepository defines the persistence contract for pressing catalog items.
// Labels are unique per pressing, case-insensitively.
type CatalogRepository interface {
	// Add inserts a new item. A label collision fails with *errs.ConflictError.
	Add(ctx context.Context, item *catalog.Item) error

	// AddIfAbsent inserts item unless its pressing already has a row with the
	// same normalized label, and returns whichever row is stored. Existing
	// rows are never modified.
	AddIfAbsent(ctx context.Context, item *catalog.Item) (*catalog.Item, error)

	Update(ctx context.Context, item *catalog.Item) error
	Delete(ctx context.Context, id kernel.ID) error
	Get(ctx context.Context, id kernel.ID) (*catalog.Item, error)

	// FindByLabel looks an item up by its normalized label. Returns
	// *errs.ObjectNotFoundError when the pressing has no such item.
	FindByLabel(ctx context.Context, pressingID kernel.ID, label string) (*catalog.Item, error)
}
