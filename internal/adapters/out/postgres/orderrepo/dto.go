// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents the orders table. Items, history and payment live in
// their own tables keyed by order_id.
type OrderDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false"`
	ReferenceCode string          `gorm:"size:40;not null;uniqueIndex"`
	PressingID    int64           `gorm:"not null;index"`
	ClientID      int64           `gorm:"not null;index"`
	PlantID       *int64          `gorm:"index"`
	Status        int             `gorm:"not null;index"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt     time.Time       `gorm:"not null;index"`

	Items   []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment *PaymentDTO        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps submission order.
type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   int64           `gorm:"not null;index"`
	Position  int             `gorm:"not null"`
	Label     string          `gorm:"size:120;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusHistoryDTO is one append-only history entry. An order reaches each
// status at most once.
type StatusHistoryDTO struct {
	ID            uint      `gorm:"primaryKey"`
	OrderID       int64     `gorm:"not null;uniqueIndex:idx_history_order_status"`
	Status        int       `gorm:"not null;uniqueIndex:idx_history_order_status"`
	ChangedByID   string    `gorm:"size:128;not null"`
	ChangedByName string    `gorm:"size:255;not null"`
	ChangedAt     time.Time `gorm:"not null"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// PaymentDTO stores the single payment of an order; the unique order_id
// index rejects a second one.
type PaymentDTO struct {
	ID      int64           `gorm:"primaryKey;autoIncrement:false"`
	OrderID int64           `gorm:"not null;uniqueIndex"`
	Amount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Method  int             `gorm:"not null"`
	Status  int             `gorm:"not null"`
	PaidAt  time.Time       `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

// ReferenceSequenceDTO holds the last reference number handed out for a
// pressing on a calendar day (YYYYMMDD).
type ReferenceSequenceDTO struct {
	PressingID int64  `gorm:"primaryKey;autoIncrement:false"`
	Day        string `gorm:"primaryKey;size:8"`
	LastValue  int64  `gorm:"not null"`
}

func (ReferenceSequenceDTO) TableName() string {
	return "reference_sequences"
}

// fromDomain converts an order aggregate to its database representation,
// children included.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            o.ID().Int64(),
		ReferenceCode: o.ReferenceCode().String(),
		PressingID:    o.PressingID().Int64(),
		ClientID:      o.ClientID().Int64(),
		PlantID:       int64Ptr(o.PlantID()),
		Status:        int(o.Status()),
		TotalAmount:   o.TotalAmount().Amount(),
		CreatedAt:     o.CreatedAt(),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:   dto.ID,
			Position:  i,
			Label:     item.Label(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	for _, entry := range o.History() {
		dto.History = append(dto.History, historyFromDomain(dto.ID, entry))
	}

	if p := o.Payment(); p != nil {
		payment := paymentFromDomain(p)
		dto.Payment = &payment
	}

	return dto
}

func historyFromDomain(orderID int64, entry order.HistoryEntry) StatusHistoryDTO {
	return StatusHistoryDTO{
		OrderID:       orderID,
		Status:        int(entry.Status()),
		ChangedByID:   entry.ChangedBy().ID,
		ChangedByName: entry.ChangedBy().Name,
		ChangedAt:     entry.ChangedAt(),
	}
}

func paymentFromDomain(p *order.Payment) PaymentDTO {
	return PaymentDTO{
		ID:      p.ID().Int64(),
		OrderID: p.OrderID().Int64(),
		Amount:  p.Amount().Amount(),
		Method:  int(p.Method()),
		Status:  int(p.Status()),
		PaidAt:  p.PaidAt(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so a corrupted row is
// reported instead of loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.IDFromInt64(dto.ID)
	if err != nil {
		return nil, err
	}

	code, err := order.ParseReferenceCode(dto.ReferenceCode)
	if err != nil {
		return nil, err
	}

	pressingID, pressingErr := kernel.IDFromInt64(dto.PressingID)
	clientID, clientErr := kernel.IDFromInt64(dto.ClientID)
	totalAmount, totalErr := kernel.NewMoney(dto.TotalAmount)
	if err = errors.Join(pressingErr, clientErr, totalErr); err != nil {
		return nil, fmt.Errorf("order %d: %w", dto.ID, err)
	}

	var plantID *kernel.ID
	if dto.PlantID != nil {
		pID, plantErr := kernel.IDFromInt64(*dto.PlantID)
		if plantErr != nil {
			return nil, plantErr
		}
		plantID = &pID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.Label, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		history = append(history, order.RestoreHistoryEntry(
			order.Status(h.Status),
			identity.UserRef{ID: h.ChangedByID, Name: h.ChangedByName},
			h.ChangedAt,
		))
	}

	var payment *order.Payment
	if dto.Payment != nil {
		payment, err = paymentToDomain(*dto.Payment)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id, code, pressingID, clientID, plantID,
		order.Status(dto.Status), items, totalAmount, payment, history, dto.CreatedAt,
	)
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	id, idErr := kernel.IDFromInt64(dto.ID)
	orderID, orderErr := kernel.IDFromInt64(dto.OrderID)
	amount, amountErr := kernel.NewMoney(dto.Amount)
	if err := errors.Join(idErr, orderErr, amountErr); err != nil {
		return nil, err
	}
	return order.RestorePayment(
		id, orderID, amount, order.PaymentMethod(dto.Method), order.PaymentStatus(dto.Status), dto.PaidAt,
	)
}

func int64Ptr(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}
