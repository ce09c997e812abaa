package pretokenizer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// DefaultCJKRanges are the CJK Unified Ideographs blocks, their extensions
// and the compatibility ideographs. BERT isolates each of these characters.
var DefaultCJKRanges = [][2]rune{
	{0x4E00, 0x9FFF},
	{0x3400, 0x4DBF},
	{0x20000, 0x2A6DF},
	{0x2A700, 0x2B73F},
	{0x2B740, 0x2B81F},
	{0x2B820, 0x2CEAF},
	{0xF900, 0xFAFF},
	{0x2F800, 0x2FA1F},
}

var defaultCJK = CJKTable(DefaultCJKRanges)

// CJKTable builds a range table from inclusive [lo, hi] pairs.
func CJKTable(ranges [][2]rune) *unicode.RangeTable {
	tables := make([]*unicode.RangeTable, 0, len(ranges))
	for _, r := range ranges {
		tables = append(tables, rangeTable(r[0], r[1]))
	}
	return rangetable.Merge(tables...)
}

func rangeTable(lo, hi rune) *unicode.RangeTable {
	var t unicode.RangeTable
	if lo <= 0xFFFF {
		t.R16 = []unicode.Range16{{Lo: uint16(lo), Hi: uint16(min(hi, 0xFFFF)), Stride: 1}}
	}
	if hi > 0xFFFF {
		t.R32 = []unicode.Range32{{Lo: uint32(max(lo, 0x10000)), Hi: uint32(hi), Stride: 1}}
	}
	return &t
}

// Bert drops whitespace and isolates every punctuation and CJK character.
type Bert struct {
	isolate Pattern
}

// NewBert returns a BERT pre-tokenizer. A nil table uses DefaultCJKRanges.
func NewBert(cjk *unicode.RangeTable) *Bert {
	if cjk == nil {
		cjk = defaultCJK
	}

	return &Bert{
		isolate: runesOf("bert", func(r rune) bool {
			return isPunctuation(r) || unicode.Is(cjk, r)
		}, true),
	}
}

func (*Bert) Type() string { return "BertPreTokenizer" }

func (b *Bert) PreTokenize(text string, _ Options) []string {
	var pieces []string
	for _, word := range whitespace.Split(text, Removed) {
		pieces = append(pieces, b.isolate.Split(word, Isolated)...)
	}
	return pieces
}
