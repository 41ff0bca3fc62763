// Package messaging delivers domain events to a broker. Every transport
// carries the same JSON body; the loan id is the partition/routing key so
// events of one loan stay ordered within a topic.
package messaging

import (
	"encoding/json"
	"fmt"

	"los-backend/internal/domain/event"
)

const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
)

func encode(e event.Event) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.Type, err)
	}
	return b, nil
}

// Decode is the consumer-side inverse of the publishers' encoding.
func Decode(b []byte) (event.Event, error) {
	var e event.Event
	if err := json.Unmarshal(b, &e); err != nil {
		return event.Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return e, nil
}
