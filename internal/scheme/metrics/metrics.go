package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for scheme intake.
type Metrics struct {
	SchemesCreated      prometheus.Counter
	InstantiateDuration prometheus.Histogram
}

// New creates a new Metrics instance with all scheme module metrics registered.
func New() *Metrics {
	return &Metrics{
		SchemesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "takeon_schemes_created_total",
			Help: "Total number of schemes created",
		}),
		InstantiateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "takeon_scheme_instantiate_duration_seconds",
			Help:    "Duration of scheme creation including checklist instantiation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementSchemesCreated records a successful scheme creation.
func (m *Metrics) IncrementSchemesCreated() {
	m.SchemesCreated.Inc()
}

// ObserveInstantiate records the duration of a create-and-instantiate flow.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveInstantiate(start time.Time) {
	m.InstantiateDuration.Observe(time.Since(start).Seconds())
}
