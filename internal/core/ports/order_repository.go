// Package ports defines the contracts between the pressing domain and its
// infrastructure: repositories, reference data lookups and event delivery.
package ports

import (
	"context"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order with its items and its CREATED history entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the pending domain events of an existing order.
	// A status change is written with a compare-and-swap on the previous
	// status and fails with *errs.ConflictError when another writer got
	// there first. A second payment fails with *errs.PaymentNotAllowedError.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items, history and payment.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetManyForUpdate locks every order in ids, in id order. A missing id
	// fails the whole call with *errs.ObjectNotFoundError.
	GetManyForUpdate(ctx context.Context, ids []kernel.ID) ([]*order.Order, error)

	// NextReferenceSequence increments and returns the reference counter of
	// pressingID for the calendar day of day.
	NextReferenceSequence(ctx context.Context, pressingID kernel.ID, day time.Time) (int64, error)
}
