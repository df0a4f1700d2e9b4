package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/outbox"
	id "maidlink/pkg/domain"
	"maidlink/pkg/platform/sentinel"
)

// Error Contract:
// - ErrNotFound when the profile does not exist
// - ErrConflict when the id or the user already has a profile of this kind
// - mutation errors from Execute are returned unwrapped and nothing is saved

type memoryRecord struct {
	userID    id.UserID
	status    models.ProfileStatus
	createdAt time.Time
	snapshot  []byte
}

// InMemory keeps snapshots in a map for tests and local runs. Every read
// decodes a fresh aggregate, so a failed mutation never leaks into storage.
type InMemory[T Aggregate] struct {
	mu      sync.Mutex
	codec   Codec[T]
	outbox  *MemoryOutbox
	opts    options
	records map[id.ProfileID]*memoryRecord
	byUser  map[id.UserID]id.ProfileID
}

func NewInMemory[T Aggregate](codec Codec[T], ob *MemoryOutbox, opts ...Option) *InMemory[T] {
	if ob == nil {
		ob = NewMemoryOutbox()
	}
	return &InMemory[T]{
		codec:   codec,
		outbox:  ob,
		opts:    buildOptions(opts),
		records: make(map[id.ProfileID]*memoryRecord),
		byUser:  make(map[id.UserID]id.ProfileID),
	}
}

func (s *InMemory[T]) Create(_ context.Context, agg T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[agg.ID()]; ok {
		return fmt.Errorf("%s profile %s: %w", s.codec.Kind, agg.ID(), sentinel.ErrConflict)
	}
	if _, ok := s.byUser[agg.UserID()]; ok {
		return fmt.Errorf("%s profile for user %s: %w", s.codec.Kind, agg.UserID(), sentinel.ErrConflict)
	}
	rec, entries, err := s.encode(agg)
	if err != nil {
		return err
	}
	s.records[agg.ID()] = rec
	s.byUser[agg.UserID()] = agg.ID()
	s.outbox.append(entries...)
	return nil
}

func (s *InMemory[T]) FindByID(_ context.Context, profileID id.ProfileID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(profileID)
}

func (s *InMemory[T]) FindByUserID(_ context.Context, userID id.UserID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profileID, ok := s.byUser[userID]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s profile for user %s: %w", s.codec.Kind, userID, sentinel.ErrNotFound)
	}
	return s.load(profileID)
}

// ListByStatus returns profiles in the given status, oldest first.
func (s *InMemory[T]) ListByStatus(_ context.Context, status models.ProfileStatus) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]id.ProfileID, 0)
	for profileID, rec := range s.records {
		if rec.status == status {
			ids = append(ids, profileID)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.records[ids[i]].createdAt.Before(s.records[ids[j]].createdAt)
	})

	out := make([]T, 0, len(ids))
	for _, profileID := range ids {
		agg, err := s.load(profileID)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}

// Execute loads the aggregate, applies fn, and saves the snapshot together
// with the drained events. The store lock serializes writers.
func (s *InMemory[T]) Execute(_ context.Context, profileID id.ProfileID, fn func(T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	agg, err := s.load(profileID)
	if err != nil {
		return zero, err
	}
	if err := fn(agg); err != nil {
		return zero, err
	}
	rec, entries, err := s.encode(agg)
	if err != nil {
		return zero, err
	}
	s.records[profileID] = rec
	s.outbox.append(entries...)
	return agg, nil
}

func (s *InMemory[T]) load(profileID id.ProfileID) (T, error) {
	var zero T
	rec, ok := s.records[profileID]
	if !ok {
		return zero, fmt.Errorf("%s profile %s: %w", s.codec.Kind, profileID, sentinel.ErrNotFound)
	}
	return s.codec.Decode(rec.snapshot, s.opts.clock())
}

func (s *InMemory[T]) encode(agg T) (*memoryRecord, []outbox.Entry, error) {
	now := s.opts.clock()
	raw, err := s.codec.Encode(agg, now)
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s profile: %w", s.codec.Kind, err)
	}
	entries, err := EntriesFromEvents(s.codec.Kind, agg.PullDomainEvents(), now)
	if err != nil {
		return nil, nil, err
	}
	return &memoryRecord{
		userID:    agg.UserID(),
		status:    agg.Status(),
		createdAt: agg.CreatedAt(),
		snapshot:  raw,
	}, entries, nil
}

// MemoryOutbox is the in-memory outbox shared by the in-memory stores.
type MemoryOutbox struct {
	mu      sync.Mutex
	entries []outbox.Entry
}

func NewMemoryOutbox() *MemoryOutbox {
	return &MemoryOutbox{}
}

func (o *MemoryOutbox) append(entries ...outbox.Entry) {
	if len(entries) == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = append(o.entries, entries...)
}

func (o *MemoryOutbox) FetchUnpublished(_ context.Context, limit int) ([]outbox.Entry, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]outbox.Entry, 0)
	for _, e := range o.entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		if e.PublishedAt == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (o *MemoryOutbox) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	marked := make(map[uuid.UUID]struct{}, len(ids))
	for _, entryID := range ids {
		marked[entryID] = struct{}{}
	}
	for i := range o.entries {
		if _, ok := marked[o.entries[i].ID]; ok && o.entries[i].PublishedAt == nil {
			publishedAt := at
			o.entries[i].PublishedAt = &publishedAt
		}
	}
	return nil
}

// Entries returns a copy of every entry, published or not.
func (o *MemoryOutbox) Entries() []outbox.Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]outbox.Entry, len(o.entries))
	copy(out, o.entries)
	return out
}
