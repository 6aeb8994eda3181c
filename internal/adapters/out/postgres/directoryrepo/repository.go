package directoryrepo

import (
	"context"
	"errors"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDirectory implements Directory using GORM.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) PressingMinimumOrderAmount(ctx context.Context, pressingID kernel.ID) (*kernel.Money, error) {
	if err := pressingID.Validate(); err != nil {
		return nil, err
	}

	var dto PressingDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", pressingID.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pressing", pressingID.String())
		}
		return nil, err
	}

	if dto.MinimumOrderAmount == nil {
		return nil, nil //nolint:nilnil // no minimum configured
	}
	minimum, err := kernel.NewMoney(*dto.MinimumOrderAmount)
	if err != nil {
		return nil, err
	}
	return &minimum, nil
}

func (d *GormDirectory) ClientBelongsToPressing(ctx context.Context, clientID, pressingID kernel.ID) (bool, error) {
	if err := errors.Join(clientID.Validate(), pressingID.Validate()); err != nil {
		return false, err
	}
	return d.exists(ctx, &ClientDTO{}, "id = ? AND pressing_id = ?", clientID.Int64(), pressingID.Int64())
}

func (d *GormDirectory) PlantExists(ctx context.Context, plantID kernel.ID) (bool, error) {
	if err := plantID.Validate(); err != nil {
		return false, err
	}
	return d.exists(ctx, &PlantDTO{}, "id = ?", plantID.Int64())
}

func (d *GormDirectory) exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
