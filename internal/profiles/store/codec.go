// Package store persists profile aggregates as JSON snapshots and appends
// their drained domain events to the outbox in the same unit of work.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/outbox"
	id "maidlink/pkg/domain"
)

// Aggregate is the part of a profile aggregate the store needs.
type Aggregate interface {
	ID() id.ProfileID
	UserID() id.UserID
	Status() models.ProfileStatus
	CreatedAt() time.Time
	UpdatedAt() time.Time
	PullDomainEvents() []models.DomainEvent
}

// Codec converts one aggregate kind to and from its snapshot JSON.
type Codec[T Aggregate] struct {
	Kind   models.Kind
	Encode func(agg T, now time.Time) ([]byte, error)
	Decode func(raw []byte, now time.Time) (T, error)
}

func MaidCodec() Codec[*models.MaidProfile] {
	return Codec[*models.MaidProfile]{
		Kind: models.KindMaid,
		Encode: func(m *models.MaidProfile, now time.Time) ([]byte, error) {
			return json.Marshal(m.Snapshot(now))
		},
		Decode: func(raw []byte, now time.Time) (*models.MaidProfile, error) {
			var snap models.MaidProfileSnapshot
			if err := json.Unmarshal(raw, &snap); err != nil {
				return nil, fmt.Errorf("decode maid snapshot: %w", err)
			}
			params, err := snap.Params()
			if err != nil {
				return nil, fmt.Errorf("rehydrate maid snapshot: %w", err)
			}
			return models.NewMaidProfile(params, now)
		},
	}
}

func SponsorCodec() Codec[*models.SponsorProfile] {
	return Codec[*models.SponsorProfile]{
		Kind: models.KindSponsor,
		Encode: func(s *models.SponsorProfile, now time.Time) ([]byte, error) {
			return json.Marshal(s.Snapshot(now))
		},
		Decode: func(raw []byte, now time.Time) (*models.SponsorProfile, error) {
			var snap models.SponsorProfileSnapshot
			if err := json.Unmarshal(raw, &snap); err != nil {
				return nil, fmt.Errorf("decode sponsor snapshot: %w", err)
			}
			params, err := snap.Params()
			if err != nil {
				return nil, fmt.Errorf("rehydrate sponsor snapshot: %w", err)
			}
			return models.NewSponsorProfile(params, now)
		},
	}
}

func AgencyCodec() Codec[*models.AgencyProfile] {
	return Codec[*models.AgencyProfile]{
		Kind: models.KindAgency,
		Encode: func(a *models.AgencyProfile, now time.Time) ([]byte, error) {
			return json.Marshal(a.Snapshot(now))
		},
		Decode: func(raw []byte, now time.Time) (*models.AgencyProfile, error) {
			var snap models.AgencyProfileSnapshot
			if err := json.Unmarshal(raw, &snap); err != nil {
				return nil, fmt.Errorf("decode agency snapshot: %w", err)
			}
			params, err := snap.Params()
			if err != nil {
				return nil, fmt.Errorf("rehydrate agency snapshot: %w", err)
			}
			return models.NewAgencyProfile(params, now)
		},
	}
}

// EventEnvelope is the JSON published for every domain event.
type EventEnvelope struct {
	ID          id.EventID          `json:"id"`
	Type        models.EventType    `json:"type"`
	Context     string              `json:"context"`
	AggregateID id.ProfileID        `json:"aggregateId"`
	Kind        models.Kind         `json:"aggregateType"`
	OccurredAt  time.Time           `json:"occurredAt"`
	Payload     models.EventPayload `json:"payload"`
}

// EntriesFromEvents serializes drained events into outbox rows.
func EntriesFromEvents(kind models.Kind, events []models.DomainEvent, now time.Time) ([]outbox.Entry, error) {
	entries := make([]outbox.Entry, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(EventEnvelope{
			ID:          e.ID,
			Type:        e.Type,
			Context:     e.Context,
			AggregateID: e.AggregateID,
			Kind:        kind,
			OccurredAt:  e.OccurredAt,
			Payload:     e.Payload,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal %s event: %w", e.Type, err)
		}
		entries = append(entries, outbox.Entry{
			ID:            uuid.UUID(e.ID),
			AggregateType: string(kind),
			AggregateID:   e.AggregateID.String(),
			EventType:     string(e.Type),
			Payload:       payload,
			OccurredAt:    e.OccurredAt,
			CreatedAt:     now,
		})
	}
	return entries, nil
}

// Option configures a store.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock overrides time.Now for snapshot encoding and outbox timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
