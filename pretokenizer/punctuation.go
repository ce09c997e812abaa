package pretokenizer

import "unicode"

// isPunctuation reports Unicode punctuation plus the ASCII symbols that
// Unicode classifies elsewhere, such as '$', '+' and '`'.
func isPunctuation(r rune) bool {
	if (r >= '!' && r <= '/') || (r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') || (r >= '{' && r <= '~') {
		return true
	}
	return unicode.IsPunct(r)
}

var punctuation = runesOf(`[\p{P}!-/:-@\[-`+"`"+`{-~]+`, isPunctuation, false)

// Punctuation isolates runs of punctuation and leaves everything else,
// whitespace included, in the pieces between them.
type Punctuation struct {
	behavior SplitBehavior
}

func NewPunctuation(behavior SplitBehavior) *Punctuation {
	return &Punctuation{behavior: behavior}
}

func (*Punctuation) Type() string { return "Punctuation" }

func (p *Punctuation) PreTokenize(text string, _ Options) []string {
	return punctuation.Split(text, p.behavior)
}
