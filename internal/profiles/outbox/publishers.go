package outbox

import (
	"context"
	"errors"
	"log/slog"
)

// LogPublisher writes messages to the log. It is the relay target when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, msg Message) error {
	p.logger.InfoContext(ctx, "domain event",
		"event_id", msg.ID,
		"event_type", msg.EventType,
		"aggregate_id", msg.Key,
		"context", msg.Context,
		"occurred_at", msg.OccurredAt,
	)
	return nil
}

// FanOut publishes to every target in order and stops at the first failure.
// Targets earlier in the list may therefore see a message more than once.
type FanOut []Publisher

func (f FanOut) Publish(ctx context.Context, msg Message) error {
	if len(f) == 0 {
		return errors.New("outbox: no publishers configured")
	}
	for _, p := range f {
		if err := p.Publish(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}
