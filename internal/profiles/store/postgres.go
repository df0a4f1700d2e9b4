package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/outbox"
	id "maidlink/pkg/domain"
	"maidlink/pkg/platform/sentinel"
	txcontext "maidlink/pkg/platform/tx"
)

const uniqueViolation = "23505"

// Postgres stores one aggregate kind in the profiles table, keyed by kind.
// Snapshots live in a jsonb column; status and user id are projected into
// their own columns for lookups.
type Postgres[T Aggregate] struct {
	db    *sql.DB
	codec Codec[T]
	opts  options
}

func NewPostgres[T Aggregate](db *sql.DB, codec Codec[T], opts ...Option) *Postgres[T] {
	return &Postgres[T]{db: db, codec: codec, opts: buildOptions(opts)}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Postgres[T]) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Postgres[T]) Create(ctx context.Context, agg T) error {
	now := s.opts.clock()
	raw, err := s.codec.Encode(agg, now)
	if err != nil {
		return fmt.Errorf("encode %s profile: %w", s.codec.Kind, err)
	}
	entries, err := EntriesFromEvents(s.codec.Kind, agg.PullDomainEvents(), now)
	if err != nil {
		return err
	}

	return txcontext.Run(ctx, s.db, func(txCtx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(txCtx, `
			INSERT INTO profiles (id, kind, user_id, status, snapshot, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			uuid.UUID(agg.ID()),
			string(s.codec.Kind),
			uuid.UUID(agg.UserID()),
			string(agg.Status()),
			string(raw),
			agg.CreatedAt(),
			agg.UpdatedAt(),
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return fmt.Errorf("%s profile for user %s: %w", s.codec.Kind, agg.UserID(), sentinel.ErrConflict)
			}
			return fmt.Errorf("insert %s profile: %w", s.codec.Kind, err)
		}
		return insertOutbox(txCtx, tx, entries)
	})
}

func (s *Postgres[T]) FindByID(ctx context.Context, profileID id.ProfileID) (T, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT snapshot FROM profiles WHERE id = $1 AND kind = $2`,
		uuid.UUID(profileID), string(s.codec.Kind),
	)
	return s.scan(row, fmt.Sprintf("%s profile %s", s.codec.Kind, profileID))
}

func (s *Postgres[T]) FindByUserID(ctx context.Context, userID id.UserID) (T, error) {
	row := s.execer(ctx).QueryRowContext(ctx,
		`SELECT snapshot FROM profiles WHERE user_id = $1 AND kind = $2`,
		uuid.UUID(userID), string(s.codec.Kind),
	)
	return s.scan(row, fmt.Sprintf("%s profile for user %s", s.codec.Kind, userID))
}

func (s *Postgres[T]) ListByStatus(ctx context.Context, status models.ProfileStatus) ([]T, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT snapshot FROM profiles
		WHERE kind = $1 AND status = $2
		ORDER BY created_at, id
	`, string(s.codec.Kind), string(status))
	if err != nil {
		return nil, fmt.Errorf("query %s profiles: %w", s.codec.Kind, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	now := s.opts.clock()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s profile: %w", s.codec.Kind, err)
		}
		agg, err := s.codec.Decode(raw, now)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s profiles: %w", s.codec.Kind, err)
	}
	return out, nil
}

// Execute locks the row with SELECT ... FOR UPDATE, applies fn, and writes the
// snapshot and outbox rows before committing. A failing fn rolls back.
func (s *Postgres[T]) Execute(ctx context.Context, profileID id.ProfileID, fn func(T) error) (T, error) {
	var result T
	err := txcontext.Run(ctx, s.db, func(txCtx context.Context, tx *sql.Tx) error {
		row := tx.QueryRowContext(txCtx,
			`SELECT snapshot FROM profiles WHERE id = $1 AND kind = $2 FOR UPDATE`,
			uuid.UUID(profileID), string(s.codec.Kind),
		)
		agg, err := s.scan(row, fmt.Sprintf("%s profile %s", s.codec.Kind, profileID))
		if err != nil {
			return err
		}
		if err := fn(agg); err != nil {
			return err
		}

		now := s.opts.clock()
		raw, err := s.codec.Encode(agg, now)
		if err != nil {
			return fmt.Errorf("encode %s profile: %w", s.codec.Kind, err)
		}
		entries, err := EntriesFromEvents(s.codec.Kind, agg.PullDomainEvents(), now)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(txCtx, `
			UPDATE profiles SET status = $2, snapshot = $3, updated_at = $4
			WHERE id = $1
		`, uuid.UUID(profileID), string(agg.Status()), string(raw), agg.UpdatedAt())
		if err != nil {
			return fmt.Errorf("update %s profile: %w", s.codec.Kind, err)
		}
		if err := insertOutbox(txCtx, tx, entries); err != nil {
			return err
		}
		result = agg
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (s *Postgres[T]) scan(row *sql.Row, what string) (T, error) {
	var zero T
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("%s: %w", what, sentinel.ErrNotFound)
		}
		return zero, fmt.Errorf("find %s: %w", what, err)
	}
	return s.codec.Decode(raw, s.opts.clock())
}

func insertOutbox(ctx context.Context, tx *sql.Tx, entries []outbox.Entry) error {
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, occurred_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.ID, e.AggregateType, e.AggregateID, e.EventType, string(e.Payload), e.OccurredAt, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert outbox entry: %w", err)
		}
	}
	return nil
}

// PostgresOutbox reads and acknowledges outbox rows for the relay worker.
type PostgresOutbox struct {
	db *sql.DB
}

func NewPostgresOutbox(db *sql.DB) *PostgresOutbox {
	return &PostgresOutbox{db: db}
}

// FetchUnpublished returns pending entries in insertion order.
func (o *PostgresOutbox) FetchUnpublished(ctx context.Context, limit int) ([]outbox.Entry, error) {
	rows, err := o.db.QueryContext(ctx, `
		SELECT id, aggregate_type, aggregate_id, event_type, payload, occurred_at, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	out := make([]outbox.Entry, 0)
	for rows.Next() {
		var e outbox.Entry
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return out, nil
}

func (o *PostgresOutbox) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, entryID := range ids {
		raw[i] = entryID.String()
	}
	_, err := o.db.ExecContext(ctx,
		`UPDATE outbox SET published_at = $1 WHERE id = ANY($2::uuid[]) AND published_at IS NULL`,
		at, pq.Array(raw),
	)
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
