package pretokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// span is a half-open byte range of a match.
type span struct {
	start, end int
}

type matcher interface {
	find(s string) []span
}

// Pattern describes what separates pieces: a literal string or a regular
// expression. When Invert is set, matches are treated as the content and
// the text between them as the delimiters.
type Pattern struct {
	m      matcher
	source string

	Invert bool
}

// NewLiteral returns a pattern matching every non-overlapping occurrence of s.
func NewLiteral(s string, caseInsensitive bool) (Pattern, error) {
	if s == "" {
		return Pattern{}, fmt.Errorf("%w: empty literal", ErrInvalidPattern)
	}

	if caseInsensitive {
		re, err := regexp2.Compile(regexp2.Escape(s), regexp2.Unicode|regexp2.IgnoreCase)
		if err != nil {
			return Pattern{}, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}

		return Pattern{m: regex{re}, source: s}, nil
	}

	return Pattern{m: literal(s), source: s}, nil
}

// NewRegex compiles expr. Lookaround is supported, which the GPT-2 family
// expressions rely on.
func NewRegex(expr string) (Pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.Unicode)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	return Pattern{m: regex{re}, source: expr}, nil
}

func mustRegex(expr string) Pattern {
	p, err := NewRegex(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the literal or expression the pattern was built from.
func (p Pattern) String() string {
	return p.source
}

// Inverted returns a copy of p with Invert set to v.
func (p Pattern) Inverted(v bool) Pattern {
	p.Invert = v
	return p
}

type literal string

func (l literal) find(s string) []span {
	var spans []span
	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], string(l))
		if i < 0 {
			break
		}

		start := offset + i
		spans = append(spans, span{start, start + len(l)})
		offset = start + len(l)
	}

	return spans
}

type regex struct {
	re *regexp2.Regexp
}

func (r regex) find(s string) []span {
	runes := make([]rune, 0, len(s))

	// regexp2 reports rune offsets
	offsets := make([]int, 0, len(s)+1)
	for i, c := range s {
		runes = append(runes, c)
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))

	var spans []span
	for m, _ := r.re.FindRunesMatch(runes); m != nil; m, _ = r.re.FindNextMatch(m) {
		if m.Length == 0 {
			continue
		}

		spans = append(spans, span{offsets[m.Index], offsets[m.Index+m.Length]})
	}

	return spans
}

// runeClass matches runs of runes satisfying f, or single runes when single
// is set.
type runeClass struct {
	f      func(rune) bool
	single bool
}

func (c runeClass) find(s string) []span {
	var spans []span
	start := -1
	for i, r := range s {
		switch {
		case !c.f(r):
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
		case c.single:
			_, size := utf8.DecodeRuneInString(s[i:])
			spans = append(spans, span{i, i + size})
		case start < 0:
			start = i
		}
	}

	if start >= 0 {
		spans = append(spans, span{start, len(s)})
	}

	return spans
}

func runesOf(name string, f func(rune) bool, single bool) Pattern {
	return Pattern{m: runeClass{f: f, single: single}, source: name}
}
