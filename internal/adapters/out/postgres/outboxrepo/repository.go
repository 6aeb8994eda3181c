package outboxrepo

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/ports"
	"pressing/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxErrorLength bounds the stored last_error, in bytes.
const MaxErrorLength = 1024

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Append stores events as pending messages. Called by the unit of work inside
// its transaction.
func (r *GormOutboxRepository) Append(ctx context.Context, events []order.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	createdAt := r.now()
	rows := make([]OutboxMessageDTO, 0, len(events))
	for _, event := range events {
		row, err := encode(uuid.New(), event)
		if err != nil {
			return err
		}
		row.CreatedAt = createdAt
		rows = append(rows, row)
	}

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("append outbox messages: %w", err)
	}
	return nil
}

// FetchPending skips rows locked by another relay on Postgres.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OutboxMessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", StatusPending).
		Order("created_at, occurred_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toMessage(dto))
	}
	return messages, nil
}

// MarkPublished fails with errs.VersionIsInvalidError when the message is no
// longer pending.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":       StatusPublished,
			"published_at": at,
			"last_error":   "",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("outbox message", fmt.Errorf("%s is no longer pending", id))
	}
	return nil
}

func (r *GormOutboxRepository) MarkAttemptFailed(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) error {
	reason = truncateReason(reason)

	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
			"status": gorm.Expr("CASE WHEN attempts + 1 >= ? THEN ? ELSE ? END",
				maxAttempts, StatusFailed, StatusPending),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("outbox message", fmt.Errorf("%s is no longer pending", id))
	}
	return nil
}

// truncateReason cuts reason to MaxErrorLength bytes without splitting a
// character. Invalid UTF-8 is replaced first: postgres rejects it in text.
func truncateReason(reason string) string {
	reason = strings.ToValidUTF8(reason, "?")
	if len(reason) <= MaxErrorLength {
		return reason
	}
	cut := MaxErrorLength
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}
