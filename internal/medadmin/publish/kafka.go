// Package publish fans committed audit entries out to downstream compliance
// consumers over Kafka. The durable audit store remains the source of truth;
// a publish failure is logged and never fails the attempt.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"medgate/internal/medadmin/models"
)

// KafkaPublisher produces audit entries to a single topic, keyed by resident
// so per-resident ordering is preserved for consumers.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// Option configures a KafkaPublisher.
type Option func(*KafkaPublisher)

// WithLogger sets the publisher's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

// NewKafkaPublisher connects to the given seed brokers.
func NewKafkaPublisher(seeds []string, topic string, opts ...Option) (*KafkaPublisher, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("at least one kafka seed broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("audit topic is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(seeds...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	p := &KafkaPublisher{client: client, topic: topic}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish produces one audit entry synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, entry models.AuditEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(entry.Request.ResidentID.String()),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit entry: %w", err)
	}

	if p.logger != nil {
		p.logger.DebugContext(ctx, "audit entry published",
			"attempt_id", entry.AttemptID,
			"topic", p.topic,
		)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}
