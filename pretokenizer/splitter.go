package pretokenizer

// Split exposes the split engine directly: any literal or expression with
// any behavior.
type Split struct {
	pattern  Pattern
	behavior SplitBehavior
}

func NewSplit(pattern Pattern, behavior SplitBehavior) *Split {
	return &Split{pattern: pattern, behavior: behavior}
}

func (*Split) Type() string { return "Split" }

func (s *Split) PreTokenize(text string, _ Options) []string {
	return s.pattern.Split(text, s.behavior)
}
