// Package metric provides Prometheus metrics for the oatable server.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: Table statistics collector
//
// Metrics include:
//
//   - Request latency histograms
//   - Table size, occupancy and load factor gauges
//   - Probe and expansion counters
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
