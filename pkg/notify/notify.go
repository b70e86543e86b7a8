package notify

import (
	"context"
	"encoding/json"
	"time"
)

// Audience scopes who should receive an event at the delivery boundary.
type Audience string

const (
	AudienceOrg  Audience = "org"
	AudienceUser Audience = "user"
)

// Event is one domain notification handed to the delivery boundary. Socket
// and email fan-out happen downstream; this service only publishes.
type Event struct {
	Name       string          `json:"name"`
	Audience   Audience        `json:"audience"`
	AudienceID string          `json:"audience_id"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Notifier publishes domain events. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// NewEvent marshals payload and stamps the event.
func NewEvent(name string, audience Audience, audienceID string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Name:       name,
		Audience:   audience,
		AudienceID: audienceID,
		Payload:    data,
		OccurredAt: time.Now().UTC(),
	}, nil
}
