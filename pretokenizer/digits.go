package pretokenizer

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

var (
	digits    = runesOf(`[0-9]+`, isDigit, false)
	eachDigit = runesOf(`[0-9]`, isDigit, true)
)

// Digits isolates ASCII digits from the surrounding text, either as
// maximal runs or one digit per piece.
type Digits struct {
	individual bool
}

func NewDigits(individual bool) *Digits {
	return &Digits{individual: individual}
}

func (*Digits) Type() string { return "Digits" }

func (d *Digits) PreTokenize(text string, _ Options) []string {
	if d.individual {
		return eachDigit.Split(text, Isolated)
	}
	return digits.Split(text, Isolated)
}
