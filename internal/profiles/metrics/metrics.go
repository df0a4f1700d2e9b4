package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics provides observability for the profiles module: creations,
// lifecycle transitions, use-case latency and outbox relay throughput.
type Metrics struct {
	ProfilesCreated   *prometheus.CounterVec
	Transitions       *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationFailures *prometheus.CounterVec
	EventsRelayed     *prometheus.CounterVec
	RelayFailures     prometheus.Counter
	OutboxBacklog     prometheus.Gauge
}

// New registers the profiles metrics with reg, or the default registerer when nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ProfilesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maidlink_profiles_created_total",
			Help: "Total number of profiles created",
		}, []string{"kind"}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maidlink_profile_transitions_total",
			Help: "Total number of lifecycle transitions by target status",
		}, []string{"kind", "status"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "maidlink_profile_operation_duration_seconds",
			Help:    "Duration of profile use cases",
			Buckets: durationBuckets,
		}, []string{"kind", "operation"}),
		OperationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maidlink_profile_operation_failures_total",
			Help: "Failed profile use cases by error code",
		}, []string{"kind", "operation", "code"}),
		EventsRelayed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "maidlink_outbox_events_relayed_total",
			Help: "Domain events published from the outbox",
		}, []string{"event_type"}),
		RelayFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "maidlink_outbox_relay_failures_total",
			Help: "Outbox relay batches that stopped on a publish or store error",
		}),
		OutboxBacklog: factory.NewGauge(prometheus.GaugeOpts{
			Name: "maidlink_outbox_batch_size",
			Help: "Unpublished entries fetched on the last relay poll",
		}),
	}
}

func (m *Metrics) IncProfileCreated(kind string) {
	m.ProfilesCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncTransition(kind, status string) {
	m.Transitions.WithLabelValues(kind, status).Inc()
}

// ObserveOperation records the duration of a use case.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(kind, operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(kind, operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncOperationFailure(kind, operation, code string) {
	m.OperationFailures.WithLabelValues(kind, operation, code).Inc()
}

func (m *Metrics) IncEventRelayed(eventType string) {
	m.EventsRelayed.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncRelayFailure() {
	m.RelayFailures.Inc()
}

func (m *Metrics) SetOutboxBatch(n int) {
	m.OutboxBacklog.Set(float64(n))
}
