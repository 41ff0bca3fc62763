package consumer

import (
	"context"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"los-backend/internal/domain/event"
	"los-backend/internal/infrastructure/messaging"
)

// Notification is the customer-facing message derived from one event.
type Notification struct {
	EventID    string
	EventType  event.Type
	CustomerID string
	LoanID     string
	Message    string
}

// Sender delivers a notification (email, SMS, push).
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// LogSender only logs; it stands in until a real channel is configured.
type LogSender struct{ Logger *slog.Logger }

func (s LogSender) Send(ctx context.Context, n Notification) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "notification sent",
		"event_id", n.EventID,
		"event_type", n.EventType,
		"customer_id", n.CustomerID,
		"loan_id", n.LoanID,
		"message", n.Message,
	)
	return nil
}

// NotificationHandler turns loan and disbursement events into notifications.
// Undecodable and unknown events are logged and skipped so they are committed.
func NotificationHandler(sender Sender, logger *slog.Logger) Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, msg kafkago.Message) error {
		e, err := messaging.Decode(msg.Value)
		if err != nil {
			logger.WarnContext(ctx, "dropping undecodable event",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err,
			)
			return nil
		}
		text, ok := render(e)
		if !ok {
			logger.WarnContext(ctx, "no notification for event type",
				"topic", msg.Topic,
				"event_type", e.Type,
				"loan_id", e.LoanID,
			)
			return nil
		}
		return sender.Send(ctx, Notification{
			EventID:    e.ID,
			EventType:  e.Type,
			CustomerID: e.CustomerID,
			LoanID:     e.LoanID,
			Message:    text,
		})
	}
}

func render(e event.Event) (string, bool) {
	amount := e.Amount.StringFixed(2)
	switch e.Type {
	case event.LoanApplied:
		return fmt.Sprintf("Your application %s for %s has been received.", e.LoanID, amount), true
	case event.LoanApproved:
		return fmt.Sprintf("Your loan %s has been approved for %s.", e.LoanID, amount), true
	case event.LoanRejected:
		if e.Remarks != "" {
			return fmt.Sprintf("Your loan %s was not approved: %s", e.LoanID, e.Remarks), true
		}
		return fmt.Sprintf("Your loan %s was not approved.", e.LoanID), true
	case event.LoanCancelled:
		return fmt.Sprintf("Your loan %s has been cancelled.", e.LoanID), true
	case event.LoanDisbursed:
		return fmt.Sprintf("%s for loan %s has been disbursed.", amount, e.LoanID), true
	case event.DisbursementFailed:
		return fmt.Sprintf("Disbursement for loan %s could not be completed.", e.LoanID), true
	}
	return "", false
}
