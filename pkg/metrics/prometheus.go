package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "browserrunner"

// PrometheusMetrics implements Recorder on prometheus/client_golang
// collectors registered with a caller-owned registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	units       *prometheus.CounterVec
	durations   *prometheus.HistogramVec
	suitesTotal prometheus.Counter
	active      prometheus.Gauge
}

// NewPrometheusMetrics registers the collectors with reg. A nil reg
// gets a fresh registry.
func NewPrometheusMetrics(reg *prometheus.Registry) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		registry: reg,
		units: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "units_total",
				Help:      "Total number of finished test units",
			},
			[]string{"target", "status"},
		),
		durations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "unit_duration_seconds",
				Help:      "Test unit duration in seconds, retries included",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4m
			},
			[]string{"target"},
		),
		suitesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suites_total",
			Help:      "Total number of suite runs",
		}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_units",
			Help:      "Number of units currently running",
		}),
	}
}

func (m *PrometheusMetrics) RecordUnit(target, status string, duration time.Duration) {
	m.units.WithLabelValues(target, status).Inc()
	m.durations.WithLabelValues(target).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) IncrementSuiteTotal() {
	m.suitesTotal.Inc()
}

func (m *PrometheusMetrics) SetActiveUnits(count int) {
	m.active.Set(float64(count))
}

// Registry returns the registry the collectors live in.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
