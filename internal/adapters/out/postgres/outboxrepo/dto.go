// Package outboxrepo stores order domain events as outbox rows written in the
// same transaction as the aggregate, and serves them to the relay.
package outboxrepo

import (
	"time"

	"pressing/internal/core/ports"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusPublished MessageStatus = "published"
	StatusFailed    MessageStatus = "failed"
)

// OutboxMessageDTO represents the outbox_messages table.
type OutboxMessageDTO struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	EventType   string        `gorm:"size:64;not null"`
	AggregateID string        `gorm:"size:32;not null;index"`
	OccurredAt  time.Time     `gorm:"not null"`
	Payload     string        `gorm:"type:text;not null"`
	Status      MessageStatus `gorm:"size:16;not null;index:idx_outbox_status_created"`
	Attempts    int           `gorm:"not null;default:0"`
	LastError   string        `gorm:"type:text"`
	PublishedAt *time.Time
	CreatedAt   time.Time `gorm:"not null;index:idx_outbox_status_created"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func toMessage(dto OutboxMessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          dto.ID,
		EventType:   dto.EventType,
		AggregateID: dto.AggregateID,
		OccurredAt:  dto.OccurredAt,
		Payload:     []byte(dto.Payload),
		Attempts:    dto.Attempts,
	}
}
