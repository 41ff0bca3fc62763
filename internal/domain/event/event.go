// Package event defines the domain events the workflow emits and the sink
// they are handed to.
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicLoan         = "loan-events"
	TopicDisbursement = "disbursement-events"
)

type Type string

const (
	LoanApplied        Type = "LOAN_APPLIED"
	LoanApproved       Type = "LOAN_APPROVED"
	LoanRejected       Type = "LOAN_REJECTED"
	LoanCancelled      Type = "LOAN_CANCELLED"
	LoanDisbursed      Type = "LOAN_DISBURSED"
	DisbursementFailed Type = "DISBURSEMENT_FAILED"
)

type Event struct {
	ID         string          `json:"event_id"`
	Type       Type            `json:"event_type"`
	LoanID     string          `json:"loan_id"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
	Remarks    string          `json:"remarks,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher is the transport-facing sink (at-least-once, per-topic best-effort ordering).
type Publisher interface {
	Publish(ctx context.Context, topic string, e Event) error
}

// Notifier publishes after a state change has committed. Delivery failures
// are logged and swallowed; the transition that produced the event stands.
type Notifier struct {
	pub     Publisher
	logger  *slog.Logger
	timeout time.Duration
}

func NewNotifier(pub Publisher, logger *slog.Logger, timeout time.Duration) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{pub: pub, logger: logger, timeout: timeout}
}

func (n *Notifier) Notify(ctx context.Context, topic string, e Event) {
	if n == nil || n.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()
	if err := n.pub.Publish(ctx, topic, e); err != nil {
		n.logger.ErrorContext(ctx, "event publish failed",
			"topic", topic,
			"event_type", e.Type,
			"event_id", e.ID,
			"loan_id", e.LoanID,
			"error", err,
		)
	}
}
