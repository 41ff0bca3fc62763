package eventmock

import (
	"context"
	"sync"

	"los-backend/internal/domain/event"
)

var _ event.Publisher = (*Publisher)(nil)

type Published struct {
	Topic string
	Event event.Event
}

// Publisher records every event it is handed. Err, when set, is returned
// after recording.
type Publisher struct {
	Err error

	mu     sync.Mutex
	events []Published
}

func (p *Publisher) Publish(_ context.Context, topic string, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Published{Topic: topic, Event: e})
	return p.Err
}

func (p *Publisher) Events() []Published {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Published, len(p.events))
	copy(out, p.events)
	return out
}

// Types lists the recorded event types in publish order.
func (p *Publisher) Types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, pe := range p.events {
		out = append(out, pe.Event.Type)
	}
	return out
}
