// Package metrics holds the Prometheus collectors for rendering, remote
// export deliveries and the preview server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "loadmaster"

// Metrics owns a private registry so tests and multiple servers never collide
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	renders          *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	deliveries       *prometheus.CounterVec
	deliveryDuration *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	rosterSize       prometheus.Gauge
}

// New builds and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "artifacts_total",
				Help:      "Rendered manifest artifacts.",
			},
			[]string{"format", "success"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "duration_seconds",
				Help:      "Manifest render duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "export",
				Name:      "deliveries_total",
				Help:      "Remote export deliveries by outcome.",
			},
			[]string{"door", "success"},
		),
		deliveryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "export",
				Name:      "delivery_duration_seconds",
				Help:      "Remote export delivery duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"door", "success"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "preview",
				Name:      "requests_total",
				Help:      "Preview server requests.",
			},
			[]string{"method", "path", "status"},
		),
		rosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "personnel",
			Help:      "Personnel on the roster at the last composition.",
		}),
	}
	m.registry.MustRegister(
		m.renders,
		m.renderDuration,
		m.deliveries,
		m.deliveryDuration,
		m.httpRequests,
		m.rosterSize,
	)
	return m
}

// RecordRender counts one render attempt.
func (m *Metrics) RecordRender(format string, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(format, strconv.FormatBool(success)).Inc()
	m.renderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordDelivery counts one remote export delivery.
func (m *Metrics) RecordDelivery(door string, duration time.Duration, success bool) {
	if m == nil {
		return
	}
	successLabel := strconv.FormatBool(success)
	m.deliveries.WithLabelValues(door, successLabel).Inc()
	m.deliveryDuration.WithLabelValues(door, successLabel).Observe(duration.Seconds())
}

// RecordHTTPRequest counts one preview request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// SetRosterSize publishes the roster length.
func (m *Metrics) SetRosterSize(n int) {
	if m == nil {
		return
	}
	m.rosterSize.Set(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
