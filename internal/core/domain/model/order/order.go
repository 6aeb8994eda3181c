package order

import (
	"errors"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the pressing workflow. It owns the item lines,
// the fixed total, the status with its append-only history, the plant
// assignment and the payment.
//
// Order follows these invariants:
//   - pressing, client, items and total never change after creation
//   - status only moves to NextStatus(status, role) of the acting role
//   - the plant is set exactly once, on the move to ReceivedAtPlant
//   - history has one entry per status, oldest first, never regressing
//   - at most one payment, only once Delivered, amount equal to the total
type Order struct {
	id            kernel.ID
	referenceCode ReferenceCode
	pressingID    kernel.ID
	clientID      kernel.ID

	// plantID stays nil until the order reaches ReceivedAtPlant.
	plantID *kernel.ID

	status      Status
	items       []Item
	totalAmount kernel.Money
	payment     *Payment
	history     []HistoryEntry
	createdAt   time.Time

	domainEvents []DomainEvent

	isConstructed bool
}

// NewOrder places an order at a pressing. The total is computed once from the
// submitted line prices, the status starts at Created and the history holds a
// single Created entry attributed to creator.
//
// Example:
//
//	code, _ := order.NewReferenceCode(pressingID, now, 1)
//	o, err := order.NewOrder(kernel.NewID(), code, pressingID, clientID, items, actor.User(), now)
func NewOrder(
	id kernel.ID,
	referenceCode ReferenceCode,
	pressingID kernel.ID,
	clientID kernel.ID,
	items []Item,
	creator identity.UserRef,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setReferenceCode(referenceCode),
		o.setPressing(pressingID),
		o.setClient(clientID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.totalAmount = TotalOf(o.items)
	if !o.totalAmount.Storable() {
		return nil, errs.NewValueIsOutOfRangeError("totalAmount", o.totalAmount, 0, kernel.MaxMoney)
	}
	o.history = []HistoryEntry{{status: Created, changedBy: creator, changedAt: now}}
	o.raise(CreatedEvent{
		OrderID:       o.id,
		ReferenceCode: o.referenceCode,
		PressingID:    o.pressingID,
		ClientID:      o.clientID,
		TotalAmount:   o.totalAmount,
		CreatedBy:     creator,
		At:            now,
	})

	return o, nil
}

// RestoreOrder rebuilds an order from storage. The stored total is trusted as
// is; the history and plant assignment are checked against the status.
func RestoreOrder(
	id kernel.ID,
	referenceCode ReferenceCode,
	pressingID kernel.ID,
	clientID kernel.ID,
	plantID *kernel.ID,
	status Status,
	items []Item,
	totalAmount kernel.Money,
	payment *Payment,
	history []HistoryEntry,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		totalAmount:   totalAmount,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setReferenceCode(referenceCode),
		o.setPressing(pressingID),
		o.setClient(clientID),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if err := errors.Join(
		o.restorePlant(plantID),
		o.restoreHistory(history),
		o.restorePayment(payment),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) ReferenceCode() ReferenceCode {
	return o.referenceCode
}

func (o *Order) PressingID() kernel.ID {
	return o.pressingID
}

func (o *Order) ClientID() kernel.ID {
	return o.clientID
}

// PlantID returns the plant that received the order, nil before ReceivedAtPlant.
func (o *Order) PlantID() *kernel.ID {
	if o.plantID == nil {
		return nil
	}
	id := *o.plantID
	return &id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Payment returns nil while the order is unpaid.
func (o *Order) Payment() *Payment {
	return o.payment
}

func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Transition moves the order to target on behalf of actor.
//
// Business rules:
//   - target must equal NextStatus(current, actor.Role())
//   - moving to ReceivedAtPlant requires plantID, which becomes permanent
//   - every other move must not carry a plant id
//
// On success a history entry stamped with now is appended and a
// StatusChangedEvent is recorded. On failure the order is unchanged.
func (o *Order) Transition(actor identity.Actor, target Status, plantID *kernel.ID, now time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := CheckTransition(o.status, target, actor.Role()); err != nil {
		return err
	}

	var assigned *kernel.ID
	if target == ReceivedAtPlant {
		if plantID == nil {
			return errs.NewValueIsRequiredError("plantId")
		}
		if err := plantID.Validate(); err != nil {
			return err
		}
		if o.plantID != nil {
			return errs.NewValueIsInvalidErrorWithCause("plantId",
				fmt.Errorf("order is already assigned to plant %s", o.plantID))
		}
		id := *plantID
		assigned = &id
	} else if plantID != nil {
		return errs.NewValueIsInvalidErrorWithCause("plantId",
			fmt.Errorf("a plant is only assigned when moving to %s", ReceivedAtPlant))
	}

	from := o.status
	o.status = target
	if assigned != nil {
		o.plantID = assigned
	}
	o.history = append(o.history, HistoryEntry{status: target, changedBy: actor.User(), changedAt: now})
	o.raise(StatusChangedEvent{
		OrderID:   o.id,
		From:      from,
		To:        target,
		PlantID:   o.PlantID(),
		ChangedBy: actor.User(),
		At:        now,
	})

	return nil
}

// RecordPayment settles a delivered, unpaid order with its own total.
// Fails with errs.PaymentNotAllowedError wrapping ErrNotDelivered or
// ErrAlreadyPaid.
func (o *Order) RecordPayment(paymentID kernel.ID, method PaymentMethod, now time.Time) (*Payment, error) {
	if o.status != Delivered {
		return nil, errs.NewPaymentNotAllowedError(o.id, ErrNotDelivered)
	}
	if o.payment != nil {
		return nil, errs.NewPaymentNotAllowedError(o.id, ErrAlreadyPaid)
	}

	payment, err := newPayment(paymentID, o.id, o.totalAmount, method, now)
	if err != nil {
		return nil, err
	}

	o.payment = payment
	o.raise(PaidEvent{
		OrderID:   o.id,
		PaymentID: payment.ID(),
		Amount:    payment.Amount(),
		Method:    payment.Method(),
		At:        now,
	})

	return payment, nil
}

// DomainEvents returns the events recorded since the order was built or last cleared.
func (o *Order) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(o.domainEvents))
	copy(events, o.domainEvents)
	return events
}

func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raise(event DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setReferenceCode(code ReferenceCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.referenceCode = code
	return nil
}

func (o *Order) setPressing(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pressingId", err)
	}
	o.pressingID = id
	return nil
}

func (o *Order) setClient(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("clientId", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) restorePlant(plantID *kernel.ID) error {
	received := o.status.Index() >= ReceivedAtPlant.Index()
	if plantID == nil {
		if received {
			return errs.NewValueIsRequiredErrorWithCause("plantId",
				fmt.Errorf("%s orders must have a plant", o.status))
		}
		return nil
	}
	if !received {
		return errs.NewValueIsInvalidErrorWithCause("plantId",
			fmt.Errorf("%s orders cannot have a plant", o.status))
	}
	if err := plantID.Validate(); err != nil {
		return err
	}
	id := *plantID
	o.plantID = &id
	return nil
}

func (o *Order) restoreHistory(history []HistoryEntry) error {
	if len(history) == 0 || history[0].status != Created {
		return errs.NewValueIsInvalidErrorWithCause("history", errors.New("history must start with CREATED"))
	}
	for i := 1; i < len(history); i++ {
		if history[i].status.Index() <= history[i-1].status.Index() {
			return errs.NewValueIsInvalidErrorWithCause("history",
				fmt.Errorf("%s cannot follow %s", history[i].status, history[i-1].status))
		}
	}
	if last := history[len(history)-1].status; last != o.status {
		return errs.NewValueIsInvalidErrorWithCause("history",
			fmt.Errorf("last entry %s does not match status %s", last, o.status))
	}
	o.history = make([]HistoryEntry, len(history))
	copy(o.history, history)
	return nil
}

func (o *Order) restorePayment(payment *Payment) error {
	if payment == nil {
		return nil
	}
	if o.status != Delivered {
		return errs.NewPaymentNotAllowedError(o.id, ErrNotDelivered)
	}
	o.payment = payment
	return nil
}
