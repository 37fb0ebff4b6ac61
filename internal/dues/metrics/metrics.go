package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the dues module.
type Metrics struct {
	// Snapshot fetch latencies by source
	SnapshotLatency *prometheus.HistogramVec

	// Query outcomes by result code
	QueryOutcome *prometheus.CounterVec

	// Full reconciliation latency including snapshot fetch
	ReconcileLatency prometheus.Histogram

	// Due students found by the last reconciliation (unfiltered)
	DueStudents prometheus.Gauge
}

// New creates a new Metrics instance with all dues module metrics registered.
func New() *Metrics {
	return &Metrics{
		SnapshotLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kitledger_dues_snapshot_duration_seconds",
			Help:    "Duration of snapshot fetches by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}), // source: "roster", "catalog"

		QueryOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kitledger_dues_queries_total",
			Help: "Total due queries by outcome",
		}, []string{"outcome"}),

		ReconcileLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kitledger_dues_reconcile_duration_seconds",
			Help:    "Duration of full reconciliation including snapshot fetching",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		DueStudents: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kitledger_dues_due_students",
			Help: "Due students found by the most recent reconciliation",
		}),
	}
}

// ObserveSnapshotLatency records the duration of fetching one source snapshot.
func (m *Metrics) ObserveSnapshotLatency(source string, d time.Duration) {
	if m != nil {
		m.SnapshotLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records a query outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.QueryOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveReconcileLatency records the total reconciliation duration.
func (m *Metrics) ObserveReconcileLatency(d time.Duration) {
	if m != nil {
		m.ReconcileLatency.Observe(d.Seconds())
	}
}

// SetDueStudents records the unfiltered due-student count.
func (m *Metrics) SetDueStudents(n int) {
	if m != nil {
		m.DueStudents.Set(float64(n))
	}
}
