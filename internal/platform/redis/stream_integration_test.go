//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"maidlink/internal/platform/config"
	platformredis "maidlink/internal/platform/redis"
	"maidlink/internal/profiles/outbox"
	"maidlink/pkg/testutil/containers"
)

type StreamPublisherSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestStreamPublisherSuite(t *testing.T) {
	suite.Run(t, new(StreamPublisherSuite))
}

func (s *StreamPublisherSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

const testStream = "maidlink:test"

func (s *StreamPublisherSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushStream(context.Background(), testStream))
}

func (s *StreamPublisherSuite) TestPublishAppendsToStream() {
	ctx := context.Background()
	pub := platformredis.NewStreamPublisher(s.redis.Client, testStream, 1000)
	occurred := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

	for _, eventType := range []string{"MaidProfileSubmitted", "MaidProfileApproved"} {
		s.Require().NoError(pub.Publish(ctx, outbox.Message{
			ID:         "evt-" + eventType,
			Key:        "profile-1",
			EventType:  eventType,
			Context:    "profile",
			Payload:    []byte(`{"type":"` + eventType + `"}`),
			OccurredAt: occurred,
		}))
	}

	entries, err := s.redis.StreamEntries(ctx, testStream)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("MaidProfileSubmitted", entries[0].Values["event_type"])
	s.Equal("profile-1", entries[0].Values["key"])
	s.Equal(`{"type":"MaidProfileApproved"}`, entries[1].Values["payload"])
	s.Equal("2024-06-15T10:00:00Z", entries[1].Values["occurred_at"])
}

func (s *StreamPublisherSuite) TestClientHealth() {
	client, err := platformredis.New(context.Background(), redisConfig(s.redis.URL))
	s.Require().NoError(err)
	s.Require().NotNil(client)
	defer client.Close()

	s.NoError(client.Health(context.Background()))
}

func redisConfig(url string) config.RedisConfig {
	return config.RedisConfig{URL: url, PoolSize: 2}
}
