package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"maidlink/internal/profiles/metrics"
	"maidlink/internal/profiles/models"
	"maidlink/internal/profiles/policy"
	"maidlink/internal/profiles/store"
	id "maidlink/pkg/domain"
	dErrors "maidlink/pkg/domain-errors"
	"maidlink/pkg/platform/sentinel"
	"maidlink/pkg/requestcontext"
)

const tracerName = "maidlink/internal/profiles/service"

// Store persists one aggregate kind. Execute loads the aggregate exclusively,
// applies fn and, only when fn succeeds, saves the snapshot together with the
// drained domain events.
type Store[T store.Aggregate] interface {
	Create(ctx context.Context, agg T) error
	FindByID(ctx context.Context, profileID id.ProfileID) (T, error)
	FindByUserID(ctx context.Context, userID id.UserID) (T, error)
	ListByStatus(ctx context.Context, status models.ProfileStatus) ([]T, error)
	Execute(ctx context.Context, profileID id.ProfileID, fn func(T) error) (T, error)
}

// Readiness summarizes whether a profile may be submitted.
type Readiness struct {
	ProfileID                id.ProfileID         `json:"profileId"`
	Status                   models.ProfileStatus `json:"status"`
	CompletionPercentage     int                  `json:"completionPercentage"`
	CompletionThresholdMet   bool                 `json:"completionThresholdMet"`
	CanSubmit                bool                 `json:"canSubmit"`
	Blocker                  string               `json:"blocker,omitempty"`
	HasMinimumWorkExperience *bool                `json:"hasMinimumWorkExperience,omitempty"`
}

type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// lifecycle holds the load/mutate/persist plumbing shared by the three services.
type lifecycle[T store.Aggregate] struct {
	kind    models.Kind
	store   Store[T]
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func newLifecycle[T store.Aggregate](kind models.Kind, s Store[T], opts []Option) lifecycle[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return lifecycle[T]{kind: kind, store: s, logger: o.logger, metrics: o.metrics, tracer: o.tracer}
}

func (l *lifecycle[T]) start(ctx context.Context, op string) (context.Context, func(*error)) {
	ctx, span := l.tracer.Start(ctx, "profiles."+string(l.kind)+"."+op,
		trace.WithAttributes(attribute.String("profile.kind", string(l.kind))))
	began := time.Now()
	return ctx, func(errp *error) {
		if err := *errp; err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
			if l.metrics != nil {
				l.metrics.IncOperationFailure(string(l.kind), op, string(dErrors.CodeOf(err)))
			}
		}
		if l.metrics != nil {
			l.metrics.ObserveOperation(string(l.kind), op, began)
		}
		span.End()
	}
}

func (l *lifecycle[T]) create(ctx context.Context, agg T) (_ T, err error) {
	ctx, done := l.start(ctx, "create")
	defer done(&err)

	var zero T
	if err := l.store.Create(ctx, agg); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return zero, dErrors.New(dErrors.CodeConflict, string(l.kind)+" profile already exists for user")
		}
		return zero, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create "+string(l.kind)+" profile")
	}
	l.logAudit(ctx, string(l.kind)+"_profile_created",
		"profile_id", agg.ID().String(),
		"user_id", agg.UserID().String())
	if l.metrics != nil {
		l.metrics.IncProfileCreated(string(l.kind))
	}
	return agg, nil
}

func (l *lifecycle[T]) get(ctx context.Context, profileID id.ProfileID) (T, error) {
	agg, err := l.store.FindByID(ctx, profileID)
	if err != nil {
		return agg, l.translate(err, "load")
	}
	return agg, nil
}

func (l *lifecycle[T]) getByUser(ctx context.Context, userID id.UserID) (T, error) {
	agg, err := l.store.FindByUserID(ctx, userID)
	if err != nil {
		return agg, l.translate(err, "load")
	}
	return agg, nil
}

func (l *lifecycle[T]) list(ctx context.Context, status models.ProfileStatus) ([]T, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid status: "+string(status))
	}
	aggs, err := l.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list "+string(l.kind)+" profiles")
	}
	return aggs, nil
}

// mutate runs fn against the stored aggregate. Lifecycle transitions are
// counted and audited; plain edits are audited only.
func (l *lifecycle[T]) mutate(ctx context.Context, op string, profileID id.ProfileID, fn func(T, time.Time) error) (_ T, err error) {
	ctx, done := l.start(ctx, op)
	defer done(&err)

	now := requestcontext.Now(ctx)
	var before models.ProfileStatus
	agg, err := l.store.Execute(ctx, profileID, func(agg T) error {
		before = agg.Status()
		return fn(agg, now)
	})
	if err != nil {
		var zero T
		return zero, l.translate(err, op)
	}

	attrs := []any{"profile_id", profileID.String(), "user_id", agg.UserID().String()}
	if after := agg.Status(); after != before {
		attrs = append(attrs, "from_status", string(before), "to_status", string(after))
		if l.metrics != nil {
			l.metrics.IncTransition(string(l.kind), string(after))
		}
	}
	l.logAudit(ctx, string(l.kind)+"_profile_"+op, attrs...)
	return agg, nil
}

func (l *lifecycle[T]) translate(err error, action string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, string(l.kind)+" profile not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, string(l.kind)+" profile was modified concurrently")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action+" "+string(l.kind)+" profile")
}

func (l *lifecycle[T]) logAudit(ctx context.Context, event string, attributes ...any) {
	if l.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	l.logger.InfoContext(ctx, event, args...)
}

func newProfileParams(userID id.UserID) (models.ProfileParams, error) {
	if userID.IsNil() {
		return models.ProfileParams{}, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	return models.ProfileParams{ID: id.NewProfileID(), UserID: userID}, nil
}

func readiness(profileID id.ProfileID, status models.ProfileStatus, pct int, guard error) Readiness {
	r := Readiness{
		ProfileID:              profileID,
		Status:                 status,
		CompletionPercentage:   pct,
		CompletionThresholdMet: policy.CanSubmitProfile(pct),
		CanSubmit:              guard == nil,
	}
	if guard != nil {
		r.Blocker = dErrors.Message(guard)
	}
	return r
}
