// Package consumer reads domain events back off Kafka for downstream
// services such as customer notifications.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes one fetched message. A failing message is retried a few
// times; after that it is logged as dropped and committed so the partition
// keeps moving. Handlers must be safe to call more than once per message.
type Handler func(ctx context.Context, msg kafkago.Message) error

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

type reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer drives one topic of a consumer group.
type Consumer struct {
	reader  reader
	topic   string
	group   string
	handler Handler
	logger  *slog.Logger

	maxAttempts int
	retryDelay  time.Duration // grows linearly per attempt
}

func NewConsumer(brokers []string, groupID, topic string, handler Handler, logger *slog.Logger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // 10 MB
	})
	return newConsumer(r, topic, groupID, handler, logger)
}

func newConsumer(r reader, topic, groupID string, handler Handler, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		reader:      r,
		topic:       topic,
		group:       groupID,
		handler:     handler,
		logger:      logger,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// Start consumes until ctx is cancelled, which is a clean stop.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer starting", "topic", c.topic, "group", c.group)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping", "topic", c.topic)
				return nil
			}
			return fmt.Errorf("fetching message from %s: %w", c.topic, err)
		}

		if err := c.handle(ctx, m); err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping", "topic", c.topic)
				return nil
			}
			c.logger.Error("message dropped",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"attempts", c.maxAttempts,
				"error", err,
			)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

// handle runs the handler up to maxAttempts times, backing off in between.
func (c *Consumer) handle(ctx context.Context, m kafkago.Message) error {
	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err = c.handler(ctx, m); err == nil {
			return nil
		}
		if attempt == c.maxAttempts {
			break
		}
		c.logger.Warn("handler error, retrying",
			"topic", m.Topic,
			"offset", m.Offset,
			"attempt", attempt,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}
	return err
}

func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}
