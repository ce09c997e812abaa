package pretokenizer

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ollama/pretokenize/internal/orderedmap"
)

type resolver func(Config) (PreTokenizer, error)

var registry = orderedmap.New[string, resolver]()

func init() {
	registry.Set("BertPreTokenizer", resolveBert)
	registry.Set("ByteLevel", resolveByteLevel)
	registry.Set("Digits", resolveDigits)
	registry.Set("Metaspace", resolveMetaspace)
	registry.Set("Punctuation", resolvePunctuation)
	registry.Set("Sequence", resolveSequence)
	registry.Set("Split", resolveSplit)
	registry.Set("Whitespace", func(Config) (PreTokenizer, error) { return NewWhitespace(), nil })
	registry.Set("WhitespaceSplit", func(Config) (PreTokenizer, error) { return NewWhitespace(), nil })
}

// Types lists the names New accepts, in registration order.
func Types() []string {
	names := make([]string, 0, registry.Len())
	for name := range registry.All() {
		names = append(names, name)
	}
	return names
}

// New resolves c into a pre-tokenizer. All validation happens here; the
// returned pre-tokenizer never fails.
func New(c Config) (PreTokenizer, error) {
	name := c.Type()
	if name == "" {
		return nil, &ConfigError{Type: "<none>", Key: "type", Err: ErrMissingKey}
	}

	fn, ok := lookup(name)
	if !ok {
		err := fmt.Errorf("%w %q", ErrUnknownType, name)
		if suggestion := closest(name); suggestion != "" {
			err = fmt.Errorf("%w, did you mean %q?", err, suggestion)
		}

		return nil, &ConfigError{Type: name, Err: err}
	}

	pt, err := fn(c)
	if err != nil {
		return nil, err
	}

	slog.Debug("resolved pre-tokenizer", "type", pt.Type(), "config", c)
	return pt, nil
}

func lookup(name string) (resolver, bool) {
	if fn, ok := registry.Get(name); ok {
		return fn, true
	}

	for k, fn := range registry.All() {
		if strings.EqualFold(k, name) {
			return fn, true
		}
	}

	return nil, false
}

// closest returns the registered name nearest to s, if any is near enough
// to be a likely typo.
func closest(s string) string {
	var best string
	score := math.MaxInt
	for name := range registry.All() {
		if d := levenshtein.ComputeDistance(strings.ToLower(s), strings.ToLower(name)); d < score {
			score = d
			best = name
		}
	}

	if score <= max(2, len(s)/3) {
		return best
	}

	return ""
}
