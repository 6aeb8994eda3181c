package catalogrepo

import (
	"context"
	"errors"

	"pressing/internal/core/domain/model/catalog"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Add inserts a new catalog item. A label already used in the pressing is
// reported as errs.ConflictError.
func (r *GormCatalogRepository) Add(ctx context.Context, item *catalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("catalog item", item.Label(), errs.NewValueIsInvalidError("label"))
		}
		return err
	}
	return nil
}

// AddIfAbsent inserts item unless its label is already taken, then returns the
// stored row for that label.
func (r *GormCatalogRepository) AddIfAbsent(ctx context.Context, item *catalog.Item) (*catalog.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(item)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pressing_id"}, {Name: "label_key"}},
		DoNothing: true,
	}).Create(&dto).Error; err != nil {
		return nil, err
	}

	return r.FindByLabel(ctx, item.PressingID(), item.Label())
}

func (r *GormCatalogRepository) Update(ctx context.Context, item *catalog.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&CatalogItemDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"label":     dto.Label,
			"label_key": dto.LabelKey,
			"price":     dto.Price,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("catalog item", item.Label(), errs.NewValueIsInvalidError("label"))
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("catalog item", item.ID().String())
	}
	return nil
}

func (r *GormCatalogRepository) Delete(ctx context.Context, id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&CatalogItemDTO{}, "id = ?", id.Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("catalog item", id.String())
	}
	return nil
}

func (r *GormCatalogRepository) Get(ctx context.Context, id kernel.ID) (*catalog.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CatalogItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("catalog item", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// FindByLabel matches on the normalized label.
func (r *GormCatalogRepository) FindByLabel(ctx context.Context, pressingID kernel.ID, label string) (*catalog.Item, error) {
	if err := pressingID.Validate(); err != nil {
		return nil, err
	}

	key := catalog.NormalizeLabel(label)
	var dto CatalogItemDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "pressing_id = ? AND label_key = ?", pressingID.Int64(), key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("catalog item", key)
		}
		return nil, err
	}
	return toDomain(dto)
}
