package pretokenizer

import (
	"math/rand/v2"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteTable(t *testing.T) {
	seen := make(map[rune]byte, 256)
	for b, r := range byteToRune {
		if prev, ok := seen[r]; ok {
			t.Fatalf("bytes %#x and %#x both map to %U", prev, b, r)
		}
		seen[r] = byte(b)

		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			t.Errorf("byte %#x maps to non-printable %U", b, r)
		}

		if got := runeToByte[r]; got != byte(b) {
			t.Errorf("runeToByte[%U] = %#x, want %#x", r, got, b)
		}
	}

	cases := map[byte]rune{
		' ':  'Ġ',
		'\n': 'Ċ',
		'\t': 'ĉ',
		0x00: 'Ā',
		0x7f: 'ġ',
		0xa0: 'ł',
		0xad: 'Ń',
		'a':  'a',
		0xff: 'ÿ',
	}

	for b, want := range cases {
		assert.Equal(t, want, byteToRune[b], "byte %#x", b)
	}
}

func TestByteRoundTrip(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	inputs := [][]byte{
		all,
		[]byte("Hey friend!     How are you?!?"),
		[]byte("请考试我的软件！12345"),
		{0xff, 0xfe, 0xc3},
		{},
	}

	r := rand.New(rand.NewPCG(1, 2))
	for range 32 {
		bs := make([]byte, r.IntN(64))
		for i := range bs {
			bs[i] = byte(r.UintN(256))
		}
		inputs = append(inputs, bs)
	}

	for _, bs := range inputs {
		got, err := DecodeBytes(EncodeBytes(bs))
		require.NoError(t, err)
		if diff := cmp.Diff(bs, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDecodeBytesError(t *testing.T) {
	_, err := DecodeBytes("ĠHey€")
	require.ErrorContains(t, err, "U+20AC")

	_, err = DecodeBytes(" ")
	require.Error(t, err)
}

func TestByteLevelPieces(t *testing.T) {
	pt := NewByteLevel(false, true)
	for _, input := range []string{heyFriend, howAreYou, whatsUp, "\x00\xff raw bytes\n"} {
		var decoded []byte
		for _, piece := range pt.PreTokenize(input, DefaultOptions) {
			bs, err := DecodeBytes(piece)
			require.NoError(t, err)
			decoded = append(decoded, bs...)
		}

		assert.Equal(t, input, string(decoded))
	}
}
