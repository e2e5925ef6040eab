// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the review collectors on a private registry
type Metrics struct {
	registry       *prometheus.Registry
	Reviews        *prometheus.CounterVec
	ReviewDuration *prometheus.HistogramVec
	ActiveSessions prometheus.Gauge
	BackendInfo    *prometheus.GaugeVec
}

// New constructs a registry with the review collectors and the Go runtime
// collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	reviews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "codelens_reviews_total",
		Help: "Review submissions by outcome",
	}, []string{"outcome"})

	// Model calls routinely take tens of seconds
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codelens_review_duration_seconds",
		Help:    "Time spent waiting for the model backend",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"outcome"})

	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "codelens_sessions_active",
		Help: "Browser sessions currently held in memory",
	})

	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "codelens_backend_info",
		Help: "Configured model backend, always 1",
	}, []string{"provider", "model"})

	reg.MustRegister(
		reviews, duration, sessions, info,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:       reg,
		Reviews:        reviews,
		ReviewDuration: duration,
		ActiveSessions: sessions,
		BackendInfo:    info,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveReview records a finished submission. Rejected and invalid
// submissions never reach the backend, so only their count is kept.
func (m *Metrics) ObserveReview(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.Reviews.WithLabelValues(outcome).Inc()
	if d > 0 {
		m.ReviewDuration.WithLabelValues(outcome).Observe(d.Seconds())
	}
}

// SetBackend publishes the configured provider and model
func (m *Metrics) SetBackend(provider, model string) {
	if m == nil {
		return
	}
	m.BackendInfo.Reset()
	m.BackendInfo.WithLabelValues(provider, model).Set(1)
}

// IncSessions increments the active session gauge.
func (m *Metrics) IncSessions() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

// DecSessions decrements the active session gauge.
func (m *Metrics) DecSessions() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}
