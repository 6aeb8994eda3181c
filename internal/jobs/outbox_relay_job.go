package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pressing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

type orderEventsHandler interface {
	Handle(ctx context.Context, cmd commands.PublishOrderEventsCommand) (commands.PublishResult, error)
}

// OutboxRelayJob periodically pushes pending order events to the broker.
// A run that is still busy when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	handler     orderEventsHandler
	schedule    string
	batchSize   int
	maxAttempts int
	timeout     time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewOutboxRelayJob creates the relay job. schedule is a six-field cron
// expression (seconds first).
func NewOutboxRelayJob(
	handler orderEventsHandler,
	schedule string,
	batchSize int,
	maxAttempts int,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:     handler,
		schedule:    schedule,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		timeout:     30 * time.Second,
		cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:      logger.With("component", "outbox_relay_job"),
	}
}

// Start registers the relay with the scheduler.
func (j *OutboxRelayJob) Start() error {
	if _, err := commands.NewPublishOrderEventsCommand(j.batchSize, j.maxAttempts); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_ = j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays a single batch. An empty outbox is not an error.
func (j *OutboxRelayJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewPublishOrderEventsCommand(j.batchSize, j.maxAttempts)
	if err != nil {
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, commands.ErrNoPendingEvents) {
			return nil
		}
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return err
	}

	if result.Failed > 0 {
		j.logger.WarnContext(ctx, "Some order events could not be published",
			"published", result.Published, "failed", result.Failed)
	} else {
		j.logger.DebugContext(ctx, "Order events published", "published", result.Published)
	}
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
