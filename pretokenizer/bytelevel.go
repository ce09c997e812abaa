package pretokenizer

import (
	"fmt"
	"strings"

	"github.com/ollama/pretokenize/logutil"
)

// byteToRune maps every byte to a printable rune: bytes that are already
// printable map to themselves, the rest are shifted past U+00FF in order.
var (
	byteToRune [256]rune
	runeToByte = make(map[rune]byte, 256)
)

func init() {
	for b := range 256 {
		r := rune(b)
		switch {
		case r == 0x00ad:
			r = 0x0143
		case r <= 0x0020:
			r = r + 0x0100
		case r >= 0x007f && r <= 0x00a0:
			r = r + 0x00a2
		}

		byteToRune[b] = r
		runeToByte[r] = byte(b)
	}
}

// EncodeBytes maps each byte of bs to its printable rune.
func EncodeBytes(bs []byte) string {
	var sb strings.Builder
	sb.Grow(len(bs) * 2)
	for _, b := range bs {
		sb.WriteRune(byteToRune[b])
	}
	return sb.String()
}

// DecodeBytes reverses EncodeBytes.
func DecodeBytes(s string) ([]byte, error) {
	bs := make([]byte, 0, len(s))
	for i, r := range s {
		b, ok := runeToByte[r]
		if !ok {
			return nil, fmt.Errorf("byte-level decode: rune %U at offset %d is not in the byte table", r, i)
		}

		bs = append(bs, b)
	}
	return bs, nil
}

// gpt2Pattern segments text into contractions, letter runs, number runs,
// symbol runs and whitespace, keeping a single leading space with the
// following word.
const gpt2Pattern = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`

var gpt2 = mustRegex(gpt2Pattern)

// ByteLevel re-encodes the UTF-8 bytes of each chunk so that spaces and
// control bytes become visible runes, e.g. ' ' -> 'Ġ'.
type ByteLevel struct {
	addPrefixSpace bool
	useRegex       bool
}

func NewByteLevel(addPrefixSpace, useRegex bool) *ByteLevel {
	return &ByteLevel{addPrefixSpace: addPrefixSpace, useRegex: useRegex}
}

func (*ByteLevel) Type() string { return "ByteLevel" }

func (b *ByteLevel) PreTokenize(text string, _ Options) []string {
	if text == "" {
		return nil
	}

	chunks := []string{text}
	if b.useRegex {
		chunks = gpt2.Split(text, Isolated)
	}

	pieces := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if b.addPrefixSpace && !strings.HasPrefix(chunk, " ") {
			chunk = " " + chunk
		}

		pieces = append(pieces, EncodeBytes([]byte(chunk)))
	}

	logutil.Trace("pretokenized", "type", b.Type(), "text", text, "pieces", logutil.Pieces(pieces))
	return pieces
}
