package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"los-backend/internal/domain/event"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes events through one lazily created writer per topic.
type KafkaPublisher struct {
	brokers []string
	logger  *slog.Logger

	mu        sync.Mutex
	writers   map[string]messageWriter
	newWriter func(topic string) messageWriter
}

func NewKafkaPublisher(brokers []string, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	p := &KafkaPublisher{
		brokers: brokers,
		logger:  logger,
		writers: make(map[string]messageWriter),
	}
	p.newWriter = p.kafkaWriter
	return p
}

func (p *KafkaPublisher) kafkaWriter(topic string) messageWriter {
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, e event.Event) error {
	payload, err := encode(e)
	if err != nil {
		return err
	}
	p.logger.DebugContext(ctx, "publishing domain event",
		"event_type", e.Type,
		"loan_id", e.LoanID,
		"topic", topic,
		"payload_size", len(payload),
	)

	msg := kafkago.Message{
		Key:   []byte(e.LoanID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: HeaderEventType, Value: []byte(e.Type)},
			{Key: HeaderEventID, Value: []byte(e.ID)},
		},
	}
	if err := p.writer(topic).WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

func (p *KafkaPublisher) writer(topic string) messageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(topic)
	p.writers[topic] = w
	return w
}

// Close flushes and closes every writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]messageWriter)
	return firstErr
}
