package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"persona-replicator-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	StreamName    = "EVENTS"
	SubjectPrefix = "events."
)

// Publisher sends events to the JetStream EVENTS stream.
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Limits retention: independent consumers (analytics, audit) each read the full stream.
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectPrefix + ">"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", StreamName, err)
	}

	return &Publisher{nc: nc, js: js}, nil
}

// Subject maps an event onto its NATS subject.
func Subject(event events.Event) string {
	return SubjectPrefix + event.EventType()
}

// Envelope is the JSON body written to the bus.
type Envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func Encode(event events.Event) ([]byte, error) {
	data, err := json.Marshal(Envelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return data, nil
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	data, err := Encode(event)
	if err != nil {
		return err
	}

	subject := Subject(event)
	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
