package pretokenizer

import (
	"fmt"
	"strings"

	"github.com/ollama/pretokenize/logutil"
)

// PrependScheme decides when Metaspace adds a leading replacement.
type PrependScheme int

const (
	PrependAlways PrependScheme = iota
	PrependFirst
	PrependNever
)

var prependSchemeNames = []string{
	PrependAlways: "always",
	PrependFirst:  "first",
	PrependNever:  "never",
}

func (p PrependScheme) String() string {
	if p < 0 || int(p) >= len(prependSchemeNames) {
		return fmt.Sprintf("PrependScheme(%d)", int(p))
	}
	return prependSchemeNames[p]
}

func ParsePrependScheme(s string) (PrependScheme, error) {
	for i, name := range prependSchemeNames {
		if strings.EqualFold(s, name) {
			return PrependScheme(i), nil
		}
	}

	return 0, fmt.Errorf("%w: prepend scheme %q", ErrInvalidValue, s)
}

// Metaspace replaces spaces with a visible marker, typically '▁', and
// splits so that each piece starts with the marker of the space before it.
type Metaspace struct {
	replacement string
	scheme      PrependScheme
	split       bool
	delimiter   Pattern
}

func NewMetaspace(replacement rune, scheme PrependScheme, split bool) *Metaspace {
	r := string(replacement)
	return &Metaspace{
		replacement: r,
		scheme:      scheme,
		split:       split,
		delimiter:   Pattern{m: literal(r), source: r},
	}
}

func (*Metaspace) Type() string { return "Metaspace" }

func (m *Metaspace) Replacement() string { return m.replacement }

func (m *Metaspace) Scheme() PrependScheme { return m.scheme }

func (m *Metaspace) PreTokenize(text string, opts Options) []string {
	text = strings.ReplaceAll(text, " ", m.replacement)

	switch {
	case m.scheme == PrependAlways,
		m.scheme == PrependFirst && opts.Has(FirstSection):
		if !strings.HasPrefix(text, m.replacement) {
			text = m.replacement + text
		}
	}

	var pieces []string
	switch {
	case text == "":
	case m.split:
		pieces = m.delimiter.Split(text, MergedWithNext)
	default:
		pieces = []string{text}
	}

	logutil.Trace("pretokenized", "type", m.Type(), "scheme", m.scheme, "first", opts.Has(FirstSection), "pieces", logutil.Pieces(pieces))
	return pieces
}
