package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Fold returns a trimmed, case-folded, width-folded copy of s so that names
// reported by different APIs compare equal when they differ only in case or
// in full-width/half-width forms.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Casers carry state; build one per call so Fold stays goroutine-safe.
	return cases.Fold().String(width.Fold.String(s))
}
