package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is a serialized domain event waiting to be published.
// Payload is the JSON envelope sent as is to the broker.
type OutboxMessage struct {
	ID          uuid.UUID
	EventType   string
	AggregateID string
	OccurredAt  time.Time
	Payload     []byte
	Attempts    int
}

// OutboxRepository gives the relay access to pending messages. Messages are
// written by the unit of work at commit, never through this interface.
type OutboxRepository interface {
	// FetchPending returns up to limit pending messages, oldest first, locked
	// against concurrent relays where the database supports it.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error

	// MarkAttemptFailed records a failed delivery. Once maxAttempts is reached
	// the message is parked as failed and no longer fetched.
	MarkAttemptFailed(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) error
}

// EventPublisher delivers one outbox message to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
