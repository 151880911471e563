package logging

import "time"

const (
	logTimestampLayout     = "2006-01-02 15:04:05"
	preciseTimestampLayout = "2006-01-02 15:04:05.000"
)

// formatTimestamp renders ts in local time. Debug lines carry milliseconds so
// debounced hotplug bursts can be told apart.
func formatTimestamp(ts time.Time, precise bool) string {
	if ts.IsZero() {
		return ""
	}
	if precise {
		return ts.In(time.Local).Format(preciseTimestampLayout)
	}
	return ts.In(time.Local).Format(logTimestampLayout)
}
