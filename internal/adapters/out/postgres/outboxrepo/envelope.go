package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"pressing/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type envelope struct {
	EventID     uuid.UUID `json:"event_id"`
	EventType   string    `json:"event_type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Data        any       `json:"data"`
}

type userData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createdData struct {
	ReferenceCode string   `json:"reference_code"`
	PressingID    string   `json:"pressing_id"`
	ClientID      string   `json:"client_id"`
	TotalAmount   string   `json:"total_amount"`
	CreatedBy     userData `json:"created_by"`
}

type statusChangedData struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	PlantID   *string  `json:"plant_id,omitempty"`
	ChangedBy userData `json:"changed_by"`
}

type paidData struct {
	PaymentID string `json:"payment_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
}

// encode builds the outbox row for one domain event.
func encode(id uuid.UUID, event order.DomainEvent) (OutboxMessageDTO, error) {
	var data any
	switch e := event.(type) {
	case order.CreatedEvent:
		data = createdData{
			ReferenceCode: e.ReferenceCode.String(),
			PressingID:    e.PressingID.String(),
			ClientID:      e.ClientID.String(),
			TotalAmount:   e.TotalAmount.String(),
			CreatedBy:     userData{ID: e.CreatedBy.ID, Name: e.CreatedBy.Name},
		}
	case order.StatusChangedEvent:
		d := statusChangedData{
			From:      e.From.String(),
			To:        e.To.String(),
			ChangedBy: userData{ID: e.ChangedBy.ID, Name: e.ChangedBy.Name},
		}
		if e.PlantID != nil {
			plant := e.PlantID.String()
			d.PlantID = &plant
		}
		data = d
	case order.PaidEvent:
		data = paidData{
			PaymentID: e.PaymentID.String(),
			Amount:    e.Amount.String(),
			Method:    e.Method.String(),
		}
	default:
		return OutboxMessageDTO{}, fmt.Errorf("unsupported domain event %T", event)
	}

	env := envelope{
		EventID:     id,
		EventType:   event.EventType(),
		AggregateID: event.AggregateID().String(),
		OccurredAt:  event.OccurredAt().UTC(),
		Data:        data,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return OutboxMessageDTO{}, fmt.Errorf("marshal %s event: %w", env.EventType, err)
	}

	return OutboxMessageDTO{
		ID:          id,
		EventType:   env.EventType,
		AggregateID: env.AggregateID,
		OccurredAt:  env.OccurredAt,
		Payload:     string(payload),
		Status:      StatusPending,
	}, nil
}
