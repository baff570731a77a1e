package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for report generation.
type Metrics struct {
	ReportsGenerated prometheus.Counter
	CacheHits        prometheus.Counter
	RenderDuration   prometheus.Histogram
}

// New creates a new Metrics instance with all report module metrics registered.
func New() *Metrics {
	return &Metrics{
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "takeon_reports_generated_total",
			Help: "Total progress reports rendered",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "takeon_report_cache_hits_total",
			Help: "Total reports served from cache",
		}),
		RenderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "takeon_report_render_duration_seconds",
			Help:    "Duration of report generation including storage reads",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementReportsGenerated records one rendered report.
func (m *Metrics) IncrementReportsGenerated() {
	m.ReportsGenerated.Inc()
}

// IncrementCacheHits records one report served from cache.
func (m *Metrics) IncrementCacheHits() {
	m.CacheHits.Inc()
}

// ObserveRender records the duration of a report generation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRender(start time.Time) {
	m.RenderDuration.Observe(time.Since(start).Seconds())
}
