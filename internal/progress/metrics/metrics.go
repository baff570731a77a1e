package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for checklist instantiation and
// reconciliation.
type Metrics struct {
	RecordsInstantiated prometheus.Counter
	RecordsUpdated      prometheus.Counter
	UpdateFailures      prometheus.Counter
	ReconcileDuration   prometheus.Histogram
}

// New creates a new Metrics instance with all progress module metrics registered.
func New() *Metrics {
	return &Metrics{
		RecordsInstantiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "takeon_progress_records_instantiated_total",
			Help: "Total progress records created by checklist instantiation",
		}),
		RecordsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "takeon_progress_records_updated_total",
			Help: "Total progress records written by reconciliation",
		}),
		UpdateFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "takeon_progress_update_failures_total",
			Help: "Total per-record write failures during reconciliation",
		}),
		ReconcileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "takeon_progress_reconcile_duration_seconds",
			Help:    "Duration of reconcile operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// AddRecordsInstantiated records how many records one instantiation created.
func (m *Metrics) AddRecordsInstantiated(n int) {
	m.RecordsInstantiated.Add(float64(n))
}

// AddRecordsUpdated records how many records one reconciliation wrote.
func (m *Metrics) AddRecordsUpdated(n int) {
	m.RecordsUpdated.Add(float64(n))
}

// AddUpdateFailures records per-record write failures.
func (m *Metrics) AddUpdateFailures(n int) {
	m.UpdateFailures.Add(float64(n))
}

// ObserveReconcile records the duration of a reconcile operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveReconcile(start time.Time) {
	m.ReconcileDuration.Observe(time.Since(start).Seconds())
}
