package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"maidlink/internal/profiles/metrics"
	"maidlink/internal/profiles/models"
	"maidlink/pkg/platform/circuit"
)

const (
	defaultInterval  = time.Second
	defaultBatchSize = 100
)

// Worker polls the outbox and hands entries to a Publisher in insertion
// order. A publish failure ends the batch; the failed entry and everything
// after it are retried on the next poll.
type Worker struct {
	store       Store
	publisher   Publisher
	interval    time.Duration
	batchSize   int
	contextName string
	logger      *slog.Logger
	metrics     *metrics.Metrics
	breaker     *circuit.Breaker
	now         func() time.Time
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

// WithBreaker pauses polling while the transport keeps failing.
func WithBreaker(b *circuit.Breaker) Option {
	return func(w *Worker) {
		w.breaker = b
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		w.now = now
	}
}

func NewWorker(store Store, publisher Publisher, opts ...Option) *Worker {
	w := &Worker{
		store:       store,
		publisher:   publisher,
		interval:    defaultInterval,
		batchSize:   defaultBatchSize,
		contextName: models.ContextName,
		logger:      slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run relays until ctx is cancelled and then returns ctx.Err().
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.drain(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// drain keeps relaying full batches so a backlog clears without waiting a
// tick per batch.
func (w *Worker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		n, err := w.RelayOnce(ctx)
		if err != nil {
			if ctx.Err() == nil {
				w.logger.WarnContext(ctx, "outbox relay failed", "error", err, "published", n)
			}
			return
		}
		if n < w.batchSize {
			return
		}
	}
}

// RelayOnce publishes at most one batch and reports how many entries were
// published and marked.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	if w.breaker != nil && !w.breaker.Allow() {
		return 0, nil
	}

	entries, err := w.store.FetchUnpublished(ctx, w.batchSize)
	if err != nil {
		w.recordFailure(ctx)
		return 0, err
	}
	if w.metrics != nil {
		w.metrics.SetOutboxBatch(len(entries))
	}
	if len(entries) == 0 {
		w.recordSuccess(ctx)
		return 0, nil
	}

	published := make([]uuid.UUID, 0, len(entries))
	var publishErr error
	for _, e := range entries {
		if err := w.publisher.Publish(ctx, MessageFromEntry(e, w.contextName)); err != nil {
			publishErr = err
			break
		}
		published = append(published, e.ID)
		if w.metrics != nil {
			w.metrics.IncEventRelayed(e.EventType)
		}
	}

	if len(published) > 0 {
		if err := w.store.MarkPublished(ctx, published, w.now()); err != nil {
			w.recordFailure(ctx)
			return 0, err
		}
	}
	if publishErr != nil {
		w.recordFailure(ctx)
		return len(published), publishErr
	}
	w.recordSuccess(ctx)
	return len(published), nil
}

func (w *Worker) recordFailure(ctx context.Context) {
	if w.metrics != nil {
		w.metrics.IncRelayFailure()
	}
	if w.breaker == nil {
		return
	}
	if _, change := w.breaker.RecordFailure(); change.Opened {
		w.logger.WarnContext(ctx, "outbox relay circuit opened", "breaker", w.breaker.Name())
	}
}

func (w *Worker) recordSuccess(ctx context.Context) {
	if w.breaker == nil {
		return
	}
	if _, change := w.breaker.RecordSuccess(); change.Closed {
		w.logger.InfoContext(ctx, "outbox relay circuit closed", "breaker", w.breaker.Name())
	}
}
