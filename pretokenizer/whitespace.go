package pretokenizer

import "unicode"

var whitespace = runesOf(`\s+`, unicode.IsSpace, false)

// Whitespace keeps maximal runs of non-whitespace and drops the whitespace
// between them.
type Whitespace struct{}

func NewWhitespace() *Whitespace { return &Whitespace{} }

func (*Whitespace) Type() string { return "Whitespace" }

func (*Whitespace) PreTokenize(text string, _ Options) []string {
	return whitespace.Split(text, Removed)
}
