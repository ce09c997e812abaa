// Package pretokenizer splits normalized text into the ordered pieces that
// a subword model consumes.
package pretokenizer

// Options describes the section of a larger input a call is processing.
type Options uint8

const (
	// FirstSection marks the first span produced by an upstream splitter,
	// e.g. the text before the first special token.
	FirstSection Options = 1 << iota
)

// DefaultOptions treats the text as the start of the input.
const DefaultOptions = FirstSection

func (o Options) Has(flag Options) bool {
	return o&flag != 0
}

// PreTokenizer turns text into ordered pieces. Implementations are
// immutable once constructed and safe for concurrent use.
type PreTokenizer interface {
	PreTokenize(text string, opts Options) []string

	// Type is the name the pre-tokenizer is registered under.
	Type() string
}
