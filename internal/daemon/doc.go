// Package daemon runs the long-lived watch loop behind `audiomatch watch`.
//
// It holds a flock on the state directory so only one watcher runs per user,
// reruns the cross-reference workflow whenever the hotplug package reports a
// device or foreign-file change, keeps the latest outcome for status queries,
// and feeds the metrics recorder. The optional Prometheus endpoint shares the
// daemon lifecycle.
package daemon
