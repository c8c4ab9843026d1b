package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for roster reconciliation runs.
type Metrics struct {
	RecordsCreated prometheus.Counter
	RecordsUpdated prometheus.Counter
	RecordsSkipped prometheus.Counter
	RunDuration    prometheus.Histogram
}

// New creates a Metrics instance registered on the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a Metrics instance registered on reg. Tests pass a private
// registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "integrityindex_roster_records_created_total",
			Help: "Total roster records reconciled as new entities",
		}),
		RecordsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "integrityindex_roster_records_updated_total",
			Help: "Total roster records reconciled onto existing entities",
		}),
		RecordsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "integrityindex_roster_records_skipped_total",
			Help: "Total roster records rejected at normalization",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "integrityindex_roster_run_duration_seconds",
			Help:    "Duration of complete reconciliation runs",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// IncrementCreated records a created entity.
func (m *Metrics) IncrementCreated() {
	m.RecordsCreated.Inc()
}

// IncrementUpdated records an updated entity.
func (m *Metrics) IncrementUpdated() {
	m.RecordsUpdated.Inc()
}

// IncrementSkipped records a rejected record.
func (m *Metrics) IncrementSkipped() {
	m.RecordsSkipped.Inc()
}

// ObserveRun records the duration of a reconciliation run.
func (m *Metrics) ObserveRun(start time.Time) {
	m.RunDuration.Observe(time.Since(start).Seconds())
}
