// Package kafka publishes audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"takeon/pkg/platform/audit"
)

// Topic carries all take-on audit events.
const Topic = "takeon.audit"

// Publisher writes audit events to Kafka. Each event is keyed by its subject
// so events for one entity stay ordered within a partition.
type Publisher struct {
	client *kgo.Client
}

// New connects a Kafka producer to the given brokers.
func New(brokers []string) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Publisher{client: client}, nil
}

// Publish delivers one event synchronously.
func (p *Publisher) Publish(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.Subject),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and shuts down the producer.
func (p *Publisher) Close() {
	p.client.Close()
}
