// Package logging assembles structured slog loggers and formatting helpers used
// across audiomatch.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so enumeration and matching code
// can tag log lines with run IDs, native sources, and platforms. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
