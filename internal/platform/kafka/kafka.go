// Package kafka publishes outbox messages to a Kafka topic with franz-go.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"maidlink/internal/platform/config"
	"maidlink/internal/profiles/outbox"
)

const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
	HeaderContext   = "context"
)

// NewClient returns nil when no brokers are configured.
func NewClient(cfg config.Kafka, opts ...kgo.Opt) (*kgo.Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(5 * time.Millisecond),
		kgo.RecordPartitioner(kgo.StickyKeyPartitioner(nil)),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// EnsureTopic creates the topic if it does not exist yet.
func EnsureTopic(ctx context.Context, client *kgo.Client, cfg config.Kafka) error {
	adm := kadm.NewClient(client)
	resp, err := adm.CreateTopic(ctx, cfg.Partitions, cfg.ReplicationFactor, nil, cfg.Topic)
	if err == nil {
		err = resp.Err
	}
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, err)
	}
	return nil
}

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher writes each message synchronously, keyed by aggregate id so one
// profile's events stay ordered within a partition.
type Publisher struct {
	client producer
	topic  string
}

func NewPublisher(client *kgo.Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, msg outbox.Message) error {
	if err := p.client.ProduceSync(ctx, Record(p.topic, msg)).FirstErr(); err != nil {
		return fmt.Errorf("produce %s to %s: %w", msg.EventType, p.topic, err)
	}
	return nil
}

// Record maps an outbox message onto a Kafka record.
func Record(topic string, msg outbox.Message) *kgo.Record {
	return &kgo.Record{
		Topic:     topic,
		Key:       []byte(msg.Key),
		Value:     msg.Payload,
		Timestamp: msg.OccurredAt,
		Headers: []kgo.RecordHeader{
			{Key: HeaderEventID, Value: []byte(msg.ID)},
			{Key: HeaderEventType, Value: []byte(msg.EventType)},
			{Key: HeaderContext, Value: []byte(msg.Context)},
		},
	}
}
