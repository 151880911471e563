// Package metrics exposes watch-loop gauges and counters on a private
// Prometheus registry. Nothing is registered globally; the HTTP endpoint is
// served only when watch.metrics_bind is configured.
package metrics
