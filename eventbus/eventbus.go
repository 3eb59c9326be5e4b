package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the payload envelope published to the bus.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEvent wraps a payload in an envelope with a fresh id.
func NewEvent(eventType, source string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    source,
		Payload:   data,
	}, nil
}

// Publisher abstracts event publication so delivery reporting works the
// same whether a broker is configured or not.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// Noop drops every event. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, topic string, event Event) error { return nil }
func (Noop) Close()                                                       {}
