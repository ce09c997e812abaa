package pretokenizer

import (
	"slices"

	"github.com/ollama/pretokenize/logutil"
)

// Sequence applies each pre-tokenizer to every piece produced by the one
// before it. Only the first piece keeps FirstSection.
type Sequence []PreTokenizer

func NewSequence(pts ...PreTokenizer) Sequence {
	return Sequence(pts)
}

func (Sequence) Type() string { return "Sequence" }

func (s Sequence) PreTokenize(text string, opts Options) []string {
	pieces := []string{text}
	for _, pt := range s {
		next := make([]string, 0, len(pieces))
		for i, piece := range pieces {
			o := opts
			if i > 0 {
				o &^= FirstSection
			}

			next = append(next, pt.PreTokenize(piece, o)...)
		}

		pieces = next
	}

	pieces = slices.DeleteFunc(pieces, func(p string) bool { return p == "" })

	logutil.Trace("pretokenized", "type", s.Type(), "steps", len(s), "pieces", logutil.Pieces(pieces))
	return pieces
}
