package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tartampluch/go-numerology/internal/config"
)

const metricsSubsystem = "search"

// Run outcomes used as the "outcome" label.
const (
	outcomeDone     = "done"
	outcomeCapped   = "capped"
	outcomeCanceled = "canceled"
)

// Metrics are the search counters. A nil *Metrics records nothing.
type Metrics struct {
	runs       *prometheus.CounterVec
	candidates prometheus.Counter
	accepted   prometheus.Counter
	duration   prometheus.Histogram
}

// NewMetrics registers the search metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "runs_total",
			Help:      "Name searches by outcome.",
		}, []string{"outcome"}),
		candidates: f.NewCounter(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "variants_checked_total",
			Help:      "Name variants evaluated against the filters.",
		}),
		accepted: f.NewCounter(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "variants_accepted_total",
			Help:      "Name variants that passed every filter.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.MetricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "duration_seconds",
			Help:      "Wall time of a name search run.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}
}

func (m *Metrics) observe(outcome string, checked, accepted int, seconds float64) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(outcome).Inc()
	m.candidates.Add(float64(checked))
	m.accepted.Add(float64(accepted))
	m.duration.Observe(seconds)
}
