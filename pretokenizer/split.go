package pretokenizer

import (
	"fmt"
	"slices"
	"strings"
)

// SplitBehavior decides what happens to the delimiters found by a Pattern.
type SplitBehavior int

const (
	// Removed drops delimiters.
	Removed SplitBehavior = iota
	// Isolated emits every delimiter as its own piece.
	Isolated
	// MergedWithPrevious appends a delimiter to the piece before it.
	MergedWithPrevious
	// MergedWithNext prepends a delimiter to the piece after it.
	MergedWithNext
	// Contiguous marks boundaries only; delimiters are dropped as with Removed.
	Contiguous
)

var behaviorNames = []string{
	Removed:            "Removed",
	Isolated:           "Isolated",
	MergedWithPrevious: "MergedWithPrevious",
	MergedWithNext:     "MergedWithNext",
	Contiguous:         "Contiguous",
}

func (b SplitBehavior) String() string {
	if b < 0 || int(b) >= len(behaviorNames) {
		return fmt.Sprintf("SplitBehavior(%d)", int(b))
	}
	return behaviorNames[b]
}

// ParseSplitBehavior accepts the behavior names case-insensitively.
func ParseSplitBehavior(s string) (SplitBehavior, error) {
	for i, name := range behaviorNames {
		if strings.EqualFold(s, name) {
			return SplitBehavior(i), nil
		}
	}

	return 0, fmt.Errorf("%w: split behavior %q", ErrInvalidValue, s)
}

// run is a stretch of text flagged as delimiter or content.
type run struct {
	span
	match bool
}

// runs partitions s into alternating content and delimiter runs.
func (p Pattern) runs(s string) []run {
	var runs []run
	var offset int
	for _, m := range p.m.find(s) {
		if m.start > offset {
			runs = append(runs, run{span{offset, m.start}, p.Invert})
		}

		runs = append(runs, run{m, !p.Invert})
		offset = m.end
	}

	if offset < len(s) {
		runs = append(runs, run{span{offset, len(s)}, p.Invert})
	}

	return runs
}

// Split partitions s into pieces around the matches of p. Every byte of s
// ends up in exactly one piece unless behavior drops delimiters.
func (p Pattern) Split(s string, behavior SplitBehavior) []string {
	runs := p.runs(s)

	var spans []span
	switch behavior {
	case Isolated:
		spans = make([]span, 0, len(runs))
		for _, r := range runs {
			spans = append(spans, r.span)
		}
	case MergedWithPrevious:
		var previous bool
		for _, r := range runs {
			if r.match && !previous && len(spans) > 0 {
				spans[len(spans)-1].end = r.end
			} else {
				spans = append(spans, r.span)
			}
			previous = r.match
		}
	case MergedWithNext:
		var previous bool
		for _, r := range slices.Backward(runs) {
			if r.match && !previous && len(spans) > 0 {
				spans[len(spans)-1].start = r.start
			} else {
				spans = append(spans, r.span)
			}
			previous = r.match
		}
		slices.Reverse(spans)
	default:
		for _, r := range runs {
			if !r.match {
				spans = append(spans, r.span)
			}
		}
	}

	pieces := make([]string, 0, len(spans))
	for _, sp := range spans {
		if sp.end > sp.start {
			pieces = append(pieces, s[sp.start:sp.end])
		}
	}

	return pieces
}
