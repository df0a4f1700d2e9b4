// Package outbox relays persisted domain events to an external transport.
//
// Stores append entries in the same transaction that saves the aggregate
// snapshot; the Worker drains unpublished entries in insertion order.
package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one row of the outbox table.
type Entry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	OccurredAt    time.Time
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// Message is what a Publisher sends. Key is the aggregate id so every event
// of one profile lands on the same partition.
type Message struct {
	ID         string
	Key        string
	EventType  string
	Context    string
	Payload    []byte
	OccurredAt time.Time
}

//go:generate mockgen -source=outbox.go -destination=mocks/outbox_mock.go -package=mocks

// Store is the relay's view of outbox persistence.
type Store interface {
	FetchUnpublished(ctx context.Context, limit int) ([]Entry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Publisher delivers one message to the event transport.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// MessageFromEntry builds the transport message for an entry.
func MessageFromEntry(e Entry, contextName string) Message {
	return Message{
		ID:         e.ID.String(),
		Key:        e.AggregateID,
		EventType:  e.EventType,
		Context:    contextName,
		Payload:    e.Payload,
		OccurredAt: e.OccurredAt,
	}
}
