package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/dmarroquin/freightops-backend/pkg/config"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
)

// PubSubNotifier publishes events to a Google Cloud Pub/Sub topic.
type PubSubNotifier struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logg      *logger.Logger
}

// NewPubSubNotifier connects to Pub/Sub and binds the configured events topic.
func NewPubSubNotifier(ctx context.Context, gcp config.GCPConfig, cfg config.PubSubConfig, logg *logger.Logger) (*PubSubNotifier, error) {
	if strings.TrimSpace(gcp.ProjectID) == "" {
		return nil, errors.New("gcp project id is required")
	}
	if strings.TrimSpace(cfg.EventsTopic) == "" {
		return nil, errors.New("events topic is required")
	}

	client, err := pubsub.NewClient(ctx, gcp.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	topic := cfg.EventsTopic
	if !strings.HasPrefix(topic, "projects/") {
		topic = fmt.Sprintf("projects/%s/topics/%s", gcp.ProjectID, topic)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "topic", topic), "notify publisher initialized")
	}

	return &PubSubNotifier{
		client:    client,
		publisher: client.Publisher(topic),
		logg:      logg,
	}, nil
}

// Publish sends the event and waits for the server acknowledgement.
func (n *PubSubNotifier) Publish(ctx context.Context, event Event) error {
	if n == nil || n.publisher == nil {
		return errors.New("notifier not initialized")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %q: %w", event.Name, err)
	}
	result := n.publisher.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"event":       event.Name,
			"audience":    string(event.Audience),
			"audience_id": event.AudienceID,
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish event %q: %w", event.Name, err)
	}
	return nil
}

// Close releases the underlying client.
func (n *PubSubNotifier) Close() error {
	if n == nil || n.client == nil {
		return nil
	}
	return n.client.Close()
}
