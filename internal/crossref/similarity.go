package crossref

import (
	"strings"
	"unicode/utf8"

	"audiomatch/internal/device"
	"audiomatch/internal/textutil"
)

const (
	maxScore = 100.0

	substringBase      = 85.0
	substringSpan      = 10.0
	substringHighRatio = 0.7

	keywordBase     = 60.0
	keywordStep     = 10.0
	keywordTypeBump = 10.0

	fuzzyThreshold  = 0.6
	fuzzyMediumAt   = 0.8
	fuzzyMultiplier = 60.0

	brandBase = 40.0
	brandStep = 10.0
)

// strategyOrder is the evaluation order of the chain. Position correlation
// needs list indices and is applied by the matcher.
var strategyOrder = []MatchType{
	MatchIDExact,
	MatchDefaultDevice,
	MatchNameExact,
	MatchNameSubstring,
	MatchKeywords,
	MatchFuzzy,
	MatchBrand,
	MatchPositionCorrelation,
}

// Strategies returns the strategy chain in evaluation order.
func Strategies() []MatchType {
	out := make([]MatchType, len(strategyOrder))
	copy(out, strategyOrder)
	return out
}

type pair struct {
	nativeName      string
	foreignLabel    string
	nativeID        string
	foreignID       string
	nativeIsDefault bool
}

func newPair(nativeName, foreignLabel, nativeID, foreignID string, nativeIsDefault bool) pair {
	return pair{
		nativeName:      textutil.Fold(nativeName),
		foreignLabel:    textutil.Fold(foreignLabel),
		nativeID:        strings.TrimSpace(nativeID),
		foreignID:       strings.TrimSpace(foreignID),
		nativeIsDefault: nativeIsDefault,
	}
}

type strategyFunc func(p pair, opts Options) SimilarityResult

var strategies = map[MatchType]strategyFunc{
	MatchIDExact:       scoreIDRelation,
	MatchDefaultDevice: scoreDefaultDevice,
	MatchNameExact:     scoreNameExact,
	MatchNameSubstring: scoreSubstring,
	MatchKeywords:      scoreKeywords,
	MatchFuzzy:         scoreFuzzy,
	MatchBrand:         scoreBrand,
}

// Similarity scores a pair with the default options.
func Similarity(nativeName, foreignLabel, nativeID, foreignID string, nativeIsDefault bool) SimilarityResult {
	return defaultMatcher.Similarity(nativeName, foreignLabel, nativeID, foreignID, nativeIsDefault)
}

func scoreIDRelation(p pair, opts Options) SimilarityResult {
	if p.nativeID == "" || p.foreignID == "" || device.IsSentinel(p.foreignID) {
		return noMatch
	}
	if p.nativeID == p.foreignID {
		return SimilarityResult{Score: maxScore, MatchType: MatchIDExact, Confidence: ConfidenceHigh}
	}
	shorter, longer := p.nativeID, p.foreignID
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) < opts.MinIDContainment || !strings.Contains(longer, shorter) {
		return noMatch
	}
	return SimilarityResult{Score: maxScore, MatchType: MatchIDExact, Confidence: ConfidenceHigh}
}

func scoreDefaultDevice(p pair, opts Options) SimilarityResult {
	if !p.nativeIsDefault || p.foreignID != device.SentinelDefault {
		return noMatch
	}
	return SimilarityResult{Score: opts.DefaultScore, MatchType: MatchDefaultDevice, Confidence: ConfidenceHigh}
}

func scoreNameExact(p pair, _ Options) SimilarityResult {
	if p.nativeName != p.foreignLabel {
		return noMatch
	}
	return SimilarityResult{Score: maxScore, MatchType: MatchNameExact, Confidence: ConfidenceHigh}
}

func scoreSubstring(p pair, _ Options) SimilarityResult {
	a, b := p.nativeName, p.foreignLabel
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return noMatch
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	shorter, longer := la, lb
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	ratio := float64(shorter) / float64(longer)
	confidence := ConfidenceMedium
	if ratio > substringHighRatio {
		confidence = ConfidenceHigh
	}
	return SimilarityResult{Score: substringBase + substringSpan*ratio, MatchType: MatchNameSubstring, Confidence: confidence}
}

func scoreKeywords(p pair, _ Options) SimilarityResult {
	common := commonKeywords(p.nativeName, p.foreignLabel)
	if len(common) == 0 {
		return noMatch
	}
	score := keywordBase + keywordStep*float64(len(common))
	for _, kw := range common {
		if isDeviceTypeWord(kw) {
			score += keywordTypeBump
			break
		}
	}
	if score > maxScore {
		score = maxScore
	}
	confidence := ConfidenceLow
	if len(common) > 1 {
		confidence = ConfidenceMedium
	}
	return SimilarityResult{Score: score, MatchType: MatchKeywords, Confidence: confidence}
}

func scoreFuzzy(p pair, _ Options) SimilarityResult {
	sim := textutil.DiceCoefficient(p.nativeName, p.foreignLabel)
	if sim <= fuzzyThreshold {
		return noMatch
	}
	confidence := ConfidenceLow
	if sim > fuzzyMediumAt {
		confidence = ConfidenceMedium
	}
	return SimilarityResult{Score: sim * fuzzyMultiplier, MatchType: MatchFuzzy, Confidence: confidence}
}

func scoreBrand(p pair, _ Options) SimilarityResult {
	n := 0
	for _, brand := range brandWords {
		if strings.Contains(p.nativeName, brand) && strings.Contains(p.foreignLabel, brand) {
			n++
		}
	}
	if n == 0 {
		return noMatch
	}
	return SimilarityResult{Score: brandBase + brandStep*float64(n), MatchType: MatchBrand, Confidence: ConfidenceLow}
}

// commonKeywords returns vocabulary terms present in both strings, in
// vocabulary order. A term is present when some token contains it, so
// "usb2.0" carries "usb". Brand terms need a whole token (or its plural)
// because partial brand hits belong to brand matching.
func commonKeywords(a, b string) []string {
	ta := textutil.Tokenize(a)
	tb := textutil.Tokenize(b)
	var common []string
	for _, kw := range keywordVocabulary {
		if hasKeyword(ta, kw) && hasKeyword(tb, kw) {
			common = append(common, kw)
		}
	}
	return common
}

func hasKeyword(tokens []string, kw string) bool {
	whole := isBrandWord(kw)
	for _, tok := range tokens {
		if whole {
			if tok == kw || tok == kw+"s" {
				return true
			}
			continue
		}
		if strings.Contains(tok, kw) {
			return true
		}
	}
	return false
}
