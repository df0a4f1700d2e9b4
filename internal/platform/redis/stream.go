package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"maidlink/internal/profiles/outbox"
)

// StreamPublisher appends outbox messages to a Redis stream with XADD.
// The stream is trimmed approximately to maxLen entries.
type StreamPublisher struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewStreamPublisher(client redis.Cmdable, stream string, maxLen int64) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream, maxLen: maxLen}
}

func (p *StreamPublisher) Publish(ctx context.Context, msg outbox.Message) error {
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"id":          msg.ID,
			"key":         msg.Key,
			"event_type":  msg.EventType,
			"context":     msg.Context,
			"occurred_at": msg.OccurredAt.UTC().Format(time.RFC3339Nano),
			"payload":     string(msg.Payload),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}
