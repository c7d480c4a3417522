// Package kafka ships audit events to a Kafka topic keyed by GSTIN so
// downstream consumers see vendor mutations in order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "vendorwatch/pkg/platform/audit"
)

type Sink struct {
	client *kgo.Client
	topic  string
}

// NewSink connects a producer to the given brokers and topic.
func NewSink(brokers []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Sink{client: client, topic: topic}, nil
}

// Publish sends one event, keyed by GSTIN. Batch-level events carry the
// batch ID as key instead.
func (s *Sink) Publish(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event %s: %w", event.Action, err)
	}

	key := event.GSTIN
	if key == "" {
		key = event.BatchID
	}

	record := &kgo.Record{
		Key:   []byte(key),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "action", Value: []byte(event.Action)},
		},
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", s.topic, err)
	}
	return nil
}

func (s *Sink) Close() error {
	s.client.Close()
	return nil
}
