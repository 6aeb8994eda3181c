package commands

import (
	"errors"

	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/guard"
)

var (
	ErrPublishOrderEventsCommandIsNotConstructed = errors.New(
		"PublishOrderEventsCommand must be created via NewPublishOrderEventsCommand constructor",
	)
)

// PublishOrderEventsCommand drains one batch of the order event outbox.
//
// Example:
//
//	cmd, _ := NewPublishOrderEventsCommand(100, 10)
//	handler := NewPublishOrderEventsCommandHandler(uowFactory, publisher)
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoPendingEvents) {
//	    return nil
//	}
type PublishOrderEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize   int
	maxAttempts int

	guard guard.ConstructorGuard
}

func NewPublishOrderEventsCommand(batchSize, maxAttempts int) (PublishOrderEventsCommand, error) {
	cmd := PublishOrderEventsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchSize(batchSize),
		cmd.setMaxAttempts(maxAttempts),
	); err != nil {
		return PublishOrderEventsCommand{}, err
	}

	return cmd, nil
}

func (c PublishOrderEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishOrderEventsCommandIsNotConstructed)
}

func (c PublishOrderEventsCommand) BatchSize() int {
	return c.batchSize
}

// MaxAttempts is the number of failed deliveries after which a message is
// parked as failed.
func (c PublishOrderEventsCommand) MaxAttempts() int {
	return c.maxAttempts
}

func (c *PublishOrderEventsCommand) setBatchSize(batchSize int) error {
	if batchSize < 1 || batchSize > 1000 {
		return errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, 1000)
	}
	c.batchSize = batchSize
	return nil
}

func (c *PublishOrderEventsCommand) setMaxAttempts(maxAttempts int) error {
	if maxAttempts < 1 {
		return errs.NewValueIsOutOfRangeError("maxAttempts", maxAttempts, 1, "unbounded")
	}
	c.maxAttempts = maxAttempts
	return nil
}
