package crossref

import (
	"math"

	"audiomatch/internal/device"
)

// MatchType names the strategy that produced a similarity score.
type MatchType string

const (
	MatchIDExact             MatchType = "id-exact"
	MatchDefaultDevice       MatchType = "default-device"
	MatchNameExact           MatchType = "name-exact"
	MatchNameSubstring       MatchType = "name-substring"
	MatchKeywords            MatchType = "keywords-match"
	MatchFuzzy               MatchType = "fuzzy-similarity"
	MatchBrand               MatchType = "brand-match"
	MatchPositionCorrelation MatchType = "position-correlation"
	MatchNone                MatchType = "no-match"
)

var matchTypeLabels = map[MatchType]string{
	MatchIDExact:             "Device ID Match",
	MatchDefaultDevice:       "Default Device",
	MatchNameExact:           "Exact Name Match",
	MatchNameSubstring:       "Substring Match",
	MatchKeywords:            "Keyword Match",
	MatchFuzzy:               "Fuzzy Text Similarity",
	MatchBrand:               "Brand/Manufacturer Match",
	MatchPositionCorrelation: "Position Correlation",
	MatchNone:                "No Match",
}

// Label returns a human readable strategy name.
func (t MatchType) Label() string {
	if label, ok := matchTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Confidence is a coarse reliability tier attached to a score.
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Rank orders confidence tiers; higher is more reliable.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// SimilarityResult is the outcome of scoring one (native, foreign) pair.
type SimilarityResult struct {
	Score      float64    `json:"score"`
	MatchType  MatchType  `json:"matchType"`
	Confidence Confidence `json:"confidence"`
}

var noMatch = SimilarityResult{Score: 0, MatchType: MatchNone, Confidence: ConfidenceNone}

// Match is an accepted one-to-one pairing.
type Match struct {
	Native     device.Device  `json:"native"`
	Foreign    device.Foreign `json:"foreign"`
	MatchType  MatchType      `json:"matchType"`
	Confidence Confidence     `json:"confidence"`
	Score      float64        `json:"score"`
}

// Report is the result of a cross-reference run. Matches are in acceptance
// order; the unmatched lists keep input order.
type Report struct {
	RunID            string           `json:"runId,omitempty"`
	Matches          []Match          `json:"matches"`
	UnmatchedNative  []device.Device  `json:"unmatchedNative"`
	UnmatchedForeign []device.Foreign `json:"unmatchedForeign"`
}

// Summary holds the totals shown alongside a report.
type Summary struct {
	NativeTotal      int                `json:"nativeTotal"`
	ForeignTotal     int                `json:"foreignTotal"`
	Matched          int                `json:"matched"`
	UnmatchedNative  int                `json:"unmatchedNative"`
	UnmatchedForeign int                `json:"unmatchedForeign"`
	MatchRate        int                `json:"matchRate"`
	ByConfidence     map[Confidence]int `json:"byConfidence"`
	ByMatchType      map[MatchType]int  `json:"byMatchType"`
}

// Summary computes totals. MatchRate is the percentage of native devices that
// were matched, rounded to the nearest integer, or 0 with no native devices.
func (r Report) Summary() Summary {
	s := Summary{
		NativeTotal:      len(r.Matches) + len(r.UnmatchedNative),
		ForeignTotal:     len(r.Matches) + len(r.UnmatchedForeign),
		Matched:          len(r.Matches),
		UnmatchedNative:  len(r.UnmatchedNative),
		UnmatchedForeign: len(r.UnmatchedForeign),
		ByConfidence:     make(map[Confidence]int),
		ByMatchType:      make(map[MatchType]int),
	}
	if s.NativeTotal > 0 {
		s.MatchRate = int(math.Round(float64(s.Matched) / float64(s.NativeTotal) * 100))
	}
	for _, m := range r.Matches {
		s.ByConfidence[m.Confidence]++
		s.ByMatchType[m.MatchType]++
	}
	return s
}
