package event

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingPublisher struct {
	topics []string
	events []Event
	err    error
	ctxErr error
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, e Event) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, e)
	p.ctxErr = ctx.Err()
	return p.err
}

func TestNotifier_DeliversEvent(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, nil, time.Second)

	n.Notify(context.Background(), TopicLoan, Event{ID: "e1", Type: LoanApplied, LoanID: "L1"})

	if len(pub.events) != 1 || pub.topics[0] != TopicLoan || pub.events[0].Type != LoanApplied {
		t.Fatalf("unexpected deliveries: %+v %+v", pub.topics, pub.events)
	}
}

func TestNotifier_SwallowsPublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	n := NewNotifier(pub, nil, time.Second)

	// must not panic or propagate
	n.Notify(context.Background(), TopicDisbursement, Event{ID: "e2", Type: LoanDisbursed})
	if len(pub.events) != 1 {
		t.Fatalf("publish attempted %d times, want 1", len(pub.events))
	}
}

func TestNotifier_IgnoresCallerCancellation(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Notify(ctx, TopicLoan, Event{ID: "e3", Type: LoanApproved})

	if pub.ctxErr != nil {
		t.Fatalf("publish context should outlive the caller, got %v", pub.ctxErr)
	}
}

func TestNotifier_NilSafe(t *testing.T) {
	var n *Notifier
	n.Notify(context.Background(), TopicLoan, Event{})

	NewNotifier(nil, nil, 0).Notify(context.Background(), TopicLoan, Event{})
}
