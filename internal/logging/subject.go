package logging

import "strings"

// FormatSubject builds the source/run subject string used in console output.
// Run IDs are shortened to their first eight characters.
func FormatSubject(source, runID string) string {
	source = strings.TrimSpace(source)
	runID = strings.TrimSpace(runID)
	if len(runID) > 8 {
		runID = runID[:8]
	}
	parts := make([]string, 0, 2)
	if source != "" {
		parts = append(parts, source)
	}
	if runID != "" {
		parts = append(parts, "run "+runID)
	}
	return strings.Join(parts, " · ")
}
