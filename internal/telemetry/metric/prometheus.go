// Package metric provides Prometheus metrics for KeyWire.
//
// It exposes metrics in Prometheus format for monitoring connection
// activity, command rates, latencies, and store size.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace is the metric namespace prefix for all KeyWire metrics.
const Namespace = "keywire"

// Command status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all application metrics, registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Connection metrics
	ConnectionsActive   prometheus.Gauge
	ConnectionsTotal    prometheus.Counter
	ConnectionsRejected prometheus.Counter

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
}

// New creates the application metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.ConnectionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "server",
		Name:      "connections_active",
		Help:      "Number of currently open client connections",
	})

	m.ConnectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "server",
		Name:      "connections_total",
		Help:      "Total client connections accepted",
	})

	m.ConnectionsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "server",
		Name:      "connections_rejected_total",
		Help:      "Connections rejected by the per-client rate limiter",
	})

	m.CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "command",
		Name:      "processed_total",
		Help:      "Commands processed, by verb and status",
	}, []string{"verb", "status"})

	m.CommandDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "command",
		Name:      "duration_seconds",
		Help:      "Command handling latency in seconds, by verb",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
	}, []string{"verb"})

	m.registry.MustRegister(
		m.ConnectionsActive,
		m.ConnectionsTotal,
		m.ConnectionsRejected,
		m.CommandsTotal,
		m.CommandDuration,
	)

	return m
}

// ObserveCommand records one processed command.
func (m *Metrics) ObserveCommand(verb, status string, seconds float64) {
	m.CommandsTotal.WithLabelValues(verb, status).Inc()
	m.CommandDuration.WithLabelValues(verb).Observe(seconds)
}

// RegisterStore registers a collector reporting store statistics.
//
// This should be called once during initialization.
func (m *Metrics) RegisterStore(stats StoreStats) {
	m.registry.MustRegister(NewStoreCollector(stats))
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
