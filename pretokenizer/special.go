package pretokenizer

import (
	"slices"
	"strings"
)

// Section is a span of input produced by isolating special tokens.
type Section struct {
	Value   string
	Special bool
}

// SplitSpecialTokens splits s into sections, extracting every occurrence
// of the given special tokens. Tokens are processed in order; earlier
// tokens take priority at overlapping positions.
func SplitSpecialTokens(s string, specials []string) []Section {
	sections := []Section{{Value: s}}
	for _, special := range specials {
		if special == "" || !strings.Contains(s, special) {
			continue
		}

		for i := 0; i < len(sections); i++ {
			section := sections[i]
			if section.Special {
				continue
			}

			var middle []Section
			switch idx := strings.Index(section.Value, special); {
			case idx < 0:
				middle = append(middle, section)
			case idx > 0:
				middle = append(middle, Section{Value: section.Value[:idx]})
				fallthrough
			default:
				middle = append(middle, Section{Value: special, Special: true})
				if rest := section.Value[idx+len(special):]; rest != "" {
					middle = append(middle, Section{Value: rest})
				}
			}

			sections = slices.Replace(sections, i, i+1, middle...)
		}
	}

	return sections
}

// PreTokenizeSections isolates specials in s and pre-tokenizes the text
// between them. Special tokens are passed through as single pieces. opts
// applies to the first section only; later sections never carry
// FirstSection.
func PreTokenizeSections(pt PreTokenizer, s string, specials []string, opts Options) []string {
	var pieces []string
	for _, section := range SplitSpecialTokens(s, specials) {
		if section.Special {
			pieces = append(pieces, section.Value)
		} else {
			pieces = append(pieces, pt.PreTokenize(section.Value, opts)...)
		}

		opts &^= FirstSection
	}

	return pieces
}
