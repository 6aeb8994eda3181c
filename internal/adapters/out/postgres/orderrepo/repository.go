package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sequenceDayLayout = "20060102"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its items and initial history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order", aggregate.ID(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the changes recorded as pending domain events.
//
// A status change is a compare-and-swap on the status the order had when it
// was loaded; losing the race yields errs.ConflictError. A second payment for
// the same order is rejected by the unique order_id index.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	for _, event := range aggregate.DomainEvents() {
		var err error
		switch e := event.(type) {
		case order.StatusChangedEvent:
			err = r.applyStatusChange(db, e)
		case order.PaidEvent:
			err = r.applyPayment(db, aggregate)
		}
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) applyStatusChange(db *gorm.DB, e order.StatusChangedEvent) error {
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND status = ?", e.OrderID.Int64(), int(e.From)).
		Updates(map[string]any{
			"status":   int(e.To),
			"plant_id": int64Ptr(e.PlantID),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", e.OrderID)
	}

	history := StatusHistoryDTO{
		OrderID:       e.OrderID.Int64(),
		Status:        int(e.To),
		ChangedByID:   e.ChangedBy.ID,
		ChangedByName: e.ChangedBy.Name,
		ChangedAt:     e.At,
	}
	if err := db.Create(&history).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order", e.OrderID, err)
		}
		return err
	}
	return nil
}

func (r *GormOrderRepository) applyPayment(db *gorm.DB, aggregate *order.Order) error {
	payment := aggregate.Payment()
	if payment == nil {
		return errs.NewValueIsRequiredError("payment")
	}

	dto := paymentFromDomain(payment)
	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewPaymentNotAllowedError(aggregate.ID(), order.ErrAlreadyPaid)
		}
		return err
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and locks its row until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(db *gorm.DB, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id.Int64()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := r.loadChildren(db.Session(&gorm.Session{NewDB: true}), []*OrderDTO{&dto}); err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetManyForUpdate locks every listed order in id order. Any missing id fails
// the whole call.
func (r *GormOrderRepository) GetManyForUpdate(ctx context.Context, ids []kernel.ID) ([]*order.Order, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("orderIds")
	}

	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Int64())
	}

	db := r.db.WithContext(ctx)
	var dtos []OrderDTO
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	found := make(map[int64]struct{}, len(dtos))
	for _, dto := range dtos {
		found[dto.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id.Int64()]; !ok {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
	}

	refs := make([]*OrderDTO, 0, len(dtos))
	for i := range dtos {
		refs = append(refs, &dtos[i])
	}
	if err := r.loadChildren(db, refs); err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// loadChildren fills items, history and payment for the given orders with one
// query per child table.
func (r *GormOrderRepository) loadChildren(db *gorm.DB, dtos []*OrderDTO) error {
	if len(dtos) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(dtos))
	byID := make(map[int64]*OrderDTO, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
		byID[dto.ID] = dto
	}

	var items []OrderItemDTO
	if err := db.Where("order_id IN ?", ids).Order("order_id, position").Find(&items).Error; err != nil {
		return err
	}
	for _, item := range items {
		byID[item.OrderID].Items = append(byID[item.OrderID].Items, item)
	}

	var history []StatusHistoryDTO
	if err := db.Where("order_id IN ?", ids).Order("order_id, id").Find(&history).Error; err != nil {
		return err
	}
	for _, entry := range history {
		byID[entry.OrderID].History = append(byID[entry.OrderID].History, entry)
	}

	var payments []PaymentDTO
	if err := db.Where("order_id IN ?", ids).Find(&payments).Error; err != nil {
		return err
	}
	for i := range payments {
		byID[payments[i].OrderID].Payment = &payments[i]
	}

	return nil
}

// NextReferenceSequence atomically increments and returns the per-pressing,
// per-day reference counter. The first order of a day gets 1.
func (r *GormOrderRepository) NextReferenceSequence(ctx context.Context, pressingID kernel.ID, day time.Time) (int64, error) {
	if err := pressingID.Validate(); err != nil {
		return 0, err
	}

	key := day.UTC().Format(sequenceDayLayout)
	db := r.db.WithContext(ctx)

	seq := ReferenceSequenceDTO{PressingID: pressingID.Int64(), Day: key, LastValue: 1}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pressing_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]any{
			"last_value": gorm.Expr("reference_sequences.last_value + 1"),
		}),
	}).Create(&seq).Error; err != nil {
		return 0, fmt.Errorf("next reference sequence: %w", err)
	}

	var current ReferenceSequenceDTO
	if err := db.First(&current, "pressing_id = ? AND day = ?", pressingID.Int64(), key).Error; err != nil {
		return 0, fmt.Errorf("read reference sequence: %w", err)
	}

	return current.LastValue, nil
}
