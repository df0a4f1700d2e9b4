//go:build integration

package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"maidlink/internal/platform/config"
	"maidlink/internal/platform/kafka"
	"maidlink/internal/profiles/outbox"
	"maidlink/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	brokers []string
}

func TestKafkaPublisherSuite(t *testing.T) {
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.brokers = containers.GetManager().GetRedpanda(s.T()).Brokers
}

func (s *KafkaPublisherSuite) TestPublishRoundTrip() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Kafka{Brokers: s.brokers, Topic: "maidlink.profiles.it", Partitions: 1, ReplicationFactor: 1}
	client, err := kafka.NewClient(cfg)
	s.Require().NoError(err)
	defer client.Close()

	s.Require().NoError(kafka.EnsureTopic(ctx, client, cfg))
	s.Require().NoError(kafka.EnsureTopic(ctx, client, cfg), "second call is a no-op")

	pub := kafka.NewPublisher(client, cfg.Topic)
	s.Require().NoError(pub.Publish(ctx, outbox.Message{
		ID:         "evt-1",
		Key:        "profile-1",
		EventType:  "AgencyProfileVerified",
		Context:    "profile",
		Payload:    []byte(`{"type":"AgencyProfileVerified"}`),
		OccurredAt: time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC),
	}))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers...),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())
	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal("profile-1", string(records[0].Key))
	s.JSONEq(`{"type":"AgencyProfileVerified"}`, string(records[0].Value))
}
