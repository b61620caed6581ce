package events

import (
	"context"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType is the subject suffix, e.g. "activity.message_sent".
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

// Publisher delivers events to an external bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
