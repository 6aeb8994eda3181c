package commands

import (
	"context"
	"errors"
	"time"

	"pressing/internal/core/ports"
)

var ErrNoPendingEvents = errors.New("no pending order events")

// PublishResult counts what happened to one outbox batch.
type PublishResult struct {
	Published int
	Failed    int
}

// PublishOrderEventsCommandHandler relays pending outbox messages to the
// event publisher. A delivery failure is recorded on the message and does not
// stop the rest of the batch.
type PublishOrderEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewPublishOrderEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishOrderEventsCommandHandler {
	return PublishOrderEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns ErrNoPendingEvents when the outbox is empty.
func (h PublishOrderEventsCommandHandler) Handle(
	ctx context.Context,
	cmd PublishOrderEventsCommand,
) (PublishResult, error) {
	if err := cmd.Validate(); err != nil {
		return PublishResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PublishResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return PublishResult{}, err
	}
	if len(messages) == 0 {
		return PublishResult{}, ErrNoPendingEvents
	}

	var result PublishResult
	for _, message := range messages {
		if publishErr := h.publisher.Publish(ctx, message); publishErr != nil {
			if err = outbox.MarkAttemptFailed(ctx, message.ID, publishErr.Error(), cmd.MaxAttempts()); err != nil {
				return PublishResult{}, err
			}
			result.Failed++
			continue
		}

		if err = outbox.MarkPublished(ctx, message.ID, time.Now().UTC()); err != nil {
			return PublishResult{}, err
		}
		result.Published++
	}

	if err = uow.Commit(ctx); err != nil {
		return PublishResult{}, err
	}

	return result, nil
}
