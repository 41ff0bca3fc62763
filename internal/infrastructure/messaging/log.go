package messaging

import (
	"context"
	"log/slog"

	"los-backend/internal/domain/event"
)

// LogPublisher is the broker-less sink: each event becomes a log line.
type LogPublisher struct{ logger *slog.Logger }

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, topic string, e event.Event) error {
	p.logger.InfoContext(ctx, "domain event",
		"topic", topic,
		"event_id", e.ID,
		"event_type", e.Type,
		"loan_id", e.LoanID,
		"status", e.Status,
		"amount", e.Amount.String(),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
