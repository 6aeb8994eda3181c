// Package kafka publishes order domain events from the outbox to Kafka.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pressing/internal/core/ports"
	"pressing/internal/pkg/errs"

	"github.com/Shopify/sarama"
)

const eventTypeHeader = "event_type"

// OrderEventPublisher sends outbox messages to one topic, keyed by order id so
// that the events of an order keep their order within a partition.
type OrderEventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewOrderEventPublisher connects a synchronous producer to brokers.
func NewOrderEventPublisher(brokers []string, topic string, logger *slog.Logger) (*OrderEventPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	config.Version = sarama.V2_1_0_0

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewOrderEventPublisherWithProducer(producer, topic, logger)
}

// NewOrderEventPublisherWithProducer wraps an existing producer.
func NewOrderEventPublisherWithProducer(
	producer sarama.SyncProducer,
	topic string,
	logger *slog.Logger,
) (*OrderEventPublisher, error) {
	if producer == nil {
		return nil, errs.NewValueIsRequiredError("producer")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	return &OrderEventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_order_event_publisher"),
	}, nil
}

// Publish blocks until the broker acknowledged the message.
func (p *OrderEventPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(message.Payload) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}
	if message.AggregateID == "" {
		return errs.NewValueIsRequiredError("aggregateId")
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(message.AggregateID),
		Value: sarama.ByteEncoder(message.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(eventTypeHeader), Value: []byte(message.EventType)},
			{Key: []byte("event_id"), Value: []byte(message.ID.String())},
		},
		Timestamp: message.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to send order event",
			"error", err,
			"topic", p.topic,
			"event_id", message.ID,
			"event_type", message.EventType)
		return fmt.Errorf("failed to send %s event %s: %w", message.EventType, message.ID, err)
	}

	p.logger.DebugContext(ctx, "Order event sent",
		"topic", p.topic,
		"key", message.AggregateID,
		"event_type", message.EventType,
		"partition", partition,
		"offset", offset)
	return nil
}

func (p *OrderEventPublisher) Close() error {
	return p.producer.Close()
}
