// Package metric provides Prometheus metrics for KeyWire.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Metrics registry and HTTP handler
//   - collector.go: Custom collector for store statistics
//
// Metrics include:
//
//   - Connection gauges and counters
//   - Command counters by verb and status
//   - Command latency histograms
//   - Store key counts
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
