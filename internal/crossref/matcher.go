package crossref

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"audiomatch/internal/device"
	"audiomatch/internal/logging"
	"audiomatch/internal/services"
)

// Matcher scores and assigns device pairs with a fixed set of options.
type Matcher struct {
	opts     Options
	disabled map[MatchType]bool
	logger   *slog.Logger
}

// Option customises the Matcher.
type Option func(*Matcher)

// WithLogger attaches a logger for per-match decision logs.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logging.NewComponentLogger(logger, "crossref")
		}
	}
}

var defaultMatcher = NewMatcher(DefaultOptions())

// NewMatcher builds a matcher. Zero-valued fields in opts take defaults.
func NewMatcher(opts Options, extra ...Option) *Matcher {
	opts = opts.normalized()
	m := &Matcher{
		opts:     opts,
		disabled: make(map[MatchType]bool, len(opts.Disabled)),
		logger:   logging.NewNop(),
	}
	for _, t := range opts.Disabled {
		m.disabled[t] = true
	}
	for _, opt := range extra {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Options returns the effective options.
func (m *Matcher) Options() Options {
	out := m.opts
	out.Disabled = append([]MatchType(nil), m.opts.Disabled...)
	return out
}

// Similarity runs the strategy chain for one pair. Position correlation is
// not evaluated here because it depends on list positions.
func (m *Matcher) Similarity(nativeName, foreignLabel, nativeID, foreignID string, nativeIsDefault bool) SimilarityResult {
	return m.score(newPair(nativeName, foreignLabel, nativeID, foreignID, nativeIsDefault))
}

func (m *Matcher) score(p pair) SimilarityResult {
	if p.nativeName == "" || p.foreignLabel == "" {
		return noMatch
	}
	for _, t := range strategyOrder {
		if m.disabled[t] {
			continue
		}
		fn, ok := strategies[t]
		if !ok {
			continue
		}
		if res := fn(p, m.opts); res.Score > 0 {
			return res
		}
	}
	return noMatch
}

func (m *Matcher) scoreAt(native device.Device, nativeIdx int, foreign device.Foreign, foreignIdx int) SimilarityResult {
	p := newPair(native.Name, foreign.Label, native.ID, foreign.DeviceID, native.IsDefault)
	res := m.score(p)
	if res.Score > 0 {
		return res
	}
	if m.opts.PositionFallback && !m.disabled[MatchPositionCorrelation] &&
		nativeIdx == foreignIdx && p.nativeName != "" && p.foreignLabel != "" {
		return SimilarityResult{Score: m.opts.PositionScore, MatchType: MatchPositionCorrelation, Confidence: ConfidenceLow}
	}
	return noMatch
}

// MatchDevices cross-references the two lists with the default options.
func MatchDevices(native []device.Device, foreign []device.Foreign) Report {
	return defaultMatcher.Match(native, foreign)
}

// Match cross-references the two lists.
func (m *Matcher) Match(native []device.Device, foreign []device.Foreign) Report {
	return m.MatchContext(context.Background(), native, foreign)
}

// MatchContext is Match with the run ID and log fields taken from ctx.
func (m *Matcher) MatchContext(ctx context.Context, native []device.Device, foreign []device.Foreign) Report {
	logger := logging.WithContext(ctx, m.logger)

	candidates := m.candidates(native, foreign)
	var accepted []candidate
	switch m.opts.Assignment {
	case AssignmentOptimal:
		accepted = assignOptimal(candidates, len(native), len(foreign))
	default:
		accepted = assignGreedy(candidates, len(native), len(foreign))
	}

	report := Report{
		Matches:          make([]Match, 0, len(accepted)),
		UnmatchedNative:  make([]device.Device, 0),
		UnmatchedForeign: make([]device.Foreign, 0),
	}
	if id, ok := services.RunIDFromContext(ctx); ok {
		report.RunID = id
	}

	claimedNative := make([]bool, len(native))
	claimedForeign := make([]bool, len(foreign))
	for _, c := range accepted {
		claimedNative[c.native] = true
		claimedForeign[c.foreign] = true
		match := Match{
			Native:     native[c.native],
			Foreign:    foreign[c.foreign],
			MatchType:  c.result.MatchType,
			Confidence: c.result.Confidence,
			Score:      c.result.Score,
		}
		report.Matches = append(report.Matches, match)
		logger.Debug("device pair accepted",
			logging.Args(append(logging.DecisionAttrs("crossref_match", string(match.MatchType), string(match.Confidence)),
				logging.String("native_name", match.Native.Name),
				logging.String("foreign_label", match.Foreign.Label),
				logging.String("native_id", match.Native.ID),
				logging.String("foreign_id", match.Foreign.DeviceID),
				logging.Float64("score", match.Score),
			)...)...,
		)
	}
	for i, d := range native {
		if !claimedNative[i] {
			report.UnmatchedNative = append(report.UnmatchedNative, d)
		}
	}
	for j, f := range foreign {
		if !claimedForeign[j] {
			report.UnmatchedForeign = append(report.UnmatchedForeign, f)
		}
	}

	logger.Debug("cross-reference complete",
		logging.String("assignment", string(m.opts.Assignment)),
		logging.Int("candidate_count", len(candidates)),
		logging.Int("match_count", len(report.Matches)),
		logging.Int("unmatched_native", len(report.UnmatchedNative)),
		logging.Int("unmatched_foreign", len(report.UnmatchedForeign)),
	)
	return report
}

type candidate struct {
	native  int
	foreign int
	result  SimilarityResult
}

func (m *Matcher) candidates(native []device.Device, foreign []device.Foreign) []candidate {
	out := make([]candidate, 0, len(native))
	for i, n := range native {
		if strings.TrimSpace(n.Name) == "" {
			continue
		}
		for j, f := range foreign {
			res := m.scoreAt(n, i, f, j)
			if res.Score > 0 {
				out = append(out, candidate{native: i, foreign: j, result: res})
			}
		}
	}
	sortCandidates(out)
	return out
}

// sortCandidates orders by score, then confidence, then input position.
func sortCandidates(c []candidate) {
	sort.SliceStable(c, func(a, b int) bool {
		return candidateLess(c[a], c[b])
	})
}

func candidateLess(a, b candidate) bool {
	if a.result.Score != b.result.Score {
		return a.result.Score > b.result.Score
	}
	if ra, rb := a.result.Confidence.Rank(), b.result.Confidence.Rank(); ra != rb {
		return ra > rb
	}
	if a.native != b.native {
		return a.native < b.native
	}
	return a.foreign < b.foreign
}

func assignGreedy(sorted []candidate, nativeCount, foreignCount int) []candidate {
	claimedNative := make([]bool, nativeCount)
	claimedForeign := make([]bool, foreignCount)
	accepted := make([]candidate, 0, min(nativeCount, foreignCount))
	for _, c := range sorted {
		if claimedNative[c.native] || claimedForeign[c.foreign] {
			continue
		}
		claimedNative[c.native] = true
		claimedForeign[c.foreign] = true
		accepted = append(accepted, c)
	}
	return accepted
}
