package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the politician catalog.
type Metrics struct {
	PoliticiansCreated prometheus.Counter
	ListDuration       prometheus.Histogram
	GetDuration        prometheus.Histogram
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
		PoliticiansCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "integrityindex_politicians_created_total",
			Help: "Total number of politicians created via the API",
		}),
		ListDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "integrityindex_list_politicians_duration_seconds",
			Help:    "Duration of filtered politician list queries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		GetDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "integrityindex_get_politician_duration_seconds",
			Help:    "Duration of politician lookups by id",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementPoliticiansCreated records a successful API create.
func (m *Metrics) IncrementPoliticiansCreated() {
	m.PoliticiansCreated.Inc()
}

// ObserveList records the duration of a List operation.
func (m *Metrics) ObserveList(start time.Time) {
	m.ListDuration.Observe(time.Since(start).Seconds())
}

// ObserveGet records the duration of a Get operation.
func (m *Metrics) ObserveGet(start time.Time) {
	m.GetDuration.Observe(time.Since(start).Seconds())
}
