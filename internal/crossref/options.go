package crossref

import (
	"fmt"
	"strings"
)

// Assignment selects how candidates are resolved into one-to-one matches.
type Assignment string

const (
	AssignmentGreedy  Assignment = "greedy"
	AssignmentOptimal Assignment = "optimal"
)

// Options tunes the strategy chain and the assignment step.
type Options struct {
	// PositionFallback scores same-index pairs that nothing else matched.
	PositionFallback bool
	Assignment       Assignment
	// MinIDContainment is the minimum length of the shorter ID for
	// containment to count as an ID relation. Equality always counts.
	MinIDContainment int
	Disabled         []MatchType
	DefaultScore     float64
	PositionScore    float64
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		Assignment:       AssignmentGreedy,
		MinIDContainment: 8,
		DefaultScore:     98,
		PositionScore:    25,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	switch o.Assignment {
	case AssignmentGreedy, AssignmentOptimal:
	default:
		o.Assignment = d.Assignment
	}
	if o.MinIDContainment <= 0 {
		o.MinIDContainment = d.MinIDContainment
	}
	if o.DefaultScore <= 0 || o.DefaultScore > maxScore {
		o.DefaultScore = d.DefaultScore
	}
	if o.PositionScore <= 0 || o.PositionScore > maxScore {
		o.PositionScore = d.PositionScore
	}
	return o
}

// ParseMatchType resolves a strategy name. no-match is not a strategy and is
// rejected.
func ParseMatchType(name string) (MatchType, error) {
	candidate := MatchType(strings.ToLower(strings.TrimSpace(name)))
	for _, t := range strategyOrder {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown match strategy %q", name)
}

// ParseAssignment resolves an assignment mode name; empty means greedy.
func ParseAssignment(name string) (Assignment, error) {
	switch Assignment(strings.ToLower(strings.TrimSpace(name))) {
	case "", AssignmentGreedy:
		return AssignmentGreedy, nil
	case AssignmentOptimal:
		return AssignmentOptimal, nil
	default:
		return "", fmt.Errorf("unknown assignment mode %q", name)
	}
}
