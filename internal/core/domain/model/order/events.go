package order

import (
	"time"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
)

const (
	EventTypeCreated       = "order.created"
	EventTypeStatusChanged = "order.status_changed"
	EventTypePaid          = "order.paid"
)

// DomainEvent is something that happened to an order and is published after
// the unit of work that produced it commits.
type DomainEvent interface {
	EventType() string
	AggregateID() kernel.ID
	OccurredAt() time.Time
}

type CreatedEvent struct {
	OrderID       kernel.ID
	ReferenceCode ReferenceCode
	PressingID    kernel.ID
	ClientID      kernel.ID
	TotalAmount   kernel.Money
	CreatedBy     identity.UserRef
	At            time.Time
}

func (e CreatedEvent) EventType() string      { return EventTypeCreated }
func (e CreatedEvent) AggregateID() kernel.ID { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time  { return e.At }

// StatusChangedEvent is also what the order repository replays to persist a
// transition: From is the status the compare-and-swap expects in storage.
type StatusChangedEvent struct {
	OrderID   kernel.ID
	From      Status
	To        Status
	PlantID   *kernel.ID
	ChangedBy identity.UserRef
	At        time.Time
}

func (e StatusChangedEvent) EventType() string      { return EventTypeStatusChanged }
func (e StatusChangedEvent) AggregateID() kernel.ID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time  { return e.At }

type PaidEvent struct {
	OrderID   kernel.ID
	PaymentID kernel.ID
	Amount    kernel.Money
	Method    PaymentMethod
	At        time.Time
}

func (e PaidEvent) EventType() string      { return EventTypePaid }
func (e PaidEvent) AggregateID() kernel.ID { return e.OrderID }
func (e PaidEvent) OccurredAt() time.Time  { return e.At }
