package ports

import (
	"context"

	"pressing/internal/core/domain/model/kernel"
)

// Directory reads the reference data the workflow depends on. Clients,
// pressings and plants are maintained outside of this service.
type Directory interface {
	// PressingMinimumOrderAmount returns nil when the pressing has no minimum.
	// A missing pressing is reported as *errs.ObjectNotFoundError.
	PressingMinimumOrderAmount(ctx context.Context, pressingID kernel.ID) (*kernel.Money, error)

	ClientBelongsToPressing(ctx context.Context, clientID, pressingID kernel.ID) (bool, error)
	PlantExists(ctx context.Context, plantID kernel.ID) (bool, error)
}
