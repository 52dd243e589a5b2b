package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the medication administration module.
type Metrics struct {
	// Stage verdicts by stage and verdict kind
	StageVerdicts *prometheus.CounterVec

	// Attempt outcomes by disposition
	AttemptOutcomes *prometheus.CounterVec

	// Snapshot fetch latencies by source
	SnapshotLatency *prometheus.HistogramVec

	// Overall attempt latency including snapshot gathering and audit write
	AttemptLatency prometheus.Histogram

	// Lock acquisition timeouts
	LockTimeouts prometheus.Counter

	// Audit persistence failures (fatal to their attempts)
	AuditFailures prometheus.Counter
}

// New creates a Metrics instance with all module metrics registered.
func New() *Metrics {
	return &Metrics{
		StageVerdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "medgate_medadmin_stage_verdicts_total",
			Help: "Total stage verdicts by stage and verdict kind",
		}, []string{"stage", "verdict"}),

		AttemptOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "medgate_medadmin_attempts_total",
			Help: "Total administration attempts by disposition",
		}, []string{"disposition"}),

		SnapshotLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medgate_medadmin_snapshot_duration_seconds",
			Help:    "Duration of snapshot fetches by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}),

		AttemptLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "medgate_medadmin_attempt_duration_seconds",
			Help:    "Duration of full administration attempts",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		LockTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medgate_medadmin_lock_timeouts_total",
			Help: "Total administration lock acquisition timeouts",
		}),

		AuditFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "medgate_medadmin_audit_failures_total",
			Help: "Total audit persistence failures",
		}),
	}
}

// IncrementStageVerdict records one stage verdict.
func (m *Metrics) IncrementStageVerdict(stage, verdict string) {
	if m != nil {
		m.StageVerdicts.WithLabelValues(stage, verdict).Inc()
	}
}

// IncrementOutcome records one attempt disposition.
func (m *Metrics) IncrementOutcome(disposition string) {
	if m != nil {
		m.AttemptOutcomes.WithLabelValues(disposition).Inc()
	}
}

// ObserveSnapshotLatency records the duration of one snapshot fetch.
func (m *Metrics) ObserveSnapshotLatency(source string, d time.Duration) {
	if m != nil {
		m.SnapshotLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// ObserveAttemptLatency records the total attempt duration.
func (m *Metrics) ObserveAttemptLatency(d time.Duration) {
	if m != nil {
		m.AttemptLatency.Observe(d.Seconds())
	}
}

// IncrementLockTimeouts records one lock acquisition timeout.
func (m *Metrics) IncrementLockTimeouts() {
	if m != nil {
		m.LockTimeouts.Inc()
	}
}

// IncrementAuditFailures records one audit persistence failure.
func (m *Metrics) IncrementAuditFailures() {
	if m != nil {
		m.AuditFailures.Inc()
	}
}
