// Package metrics exports Prometheus metrics for a wiring Runtime: delay
// durations, delay overshoot and clock or sleep failures.
package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wippyai/wiring/clock"
	"github.com/wippyai/wiring/errors"
)

var delayBuckets = []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10}

var driftBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}

// Metrics implements wiring.Observer.
type Metrics struct {
	delays   prometheus.Histogram
	drift    prometheus.Histogram
	early    prometheus.Counter
	failures *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	promFactory := promauto.With(reg)
	return &Metrics{
		delays: promFactory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wiring_delay_duration_seconds",
			Help:    "Measured duration of completed delays",
			Buckets: delayBuckets,
		}),
		drift: promFactory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wiring_delay_overshoot_seconds",
			Help:    "Time a completed delay ran past the requested duration",
			Buckets: driftBuckets,
		}),
		early: promFactory.NewCounter(prometheus.CounterOpts{
			Name: "wiring_delay_early_total",
			Help: "Completed delays measured shorter than requested",
		}),
		failures: promFactory.NewCounterVec(prometheus.CounterOpts{
			Name: "wiring_failures_total",
			Help: "Clock query and sleep failures labelled by OS call and kind",
		}, []string{"op", "kind"}),
	}
}

func (m *Metrics) ObserveDelay(requested, actual clock.Duration) {
	m.delays.Observe(actual.Std().Seconds())

	over := clock.Timestamp(actual).Sub(clock.Timestamp(requested))
	if over.IsNegative() {
		m.early.Inc()
		return
	}
	m.drift.Observe(over.Std().Seconds())
}

func (m *Metrics) ObserveFailure(err *errors.Error) {
	m.failures.With(prometheus.Labels{
		"op":   string(err.Op),
		"kind": string(err.Kind),
	}).Inc()
}

// Handler returns a router serving the metrics gathered by g at /metrics.
func Handler(g prometheus.Gatherer) http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}
