package pretokenizer

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
)

// Config is an untyped pre-tokenizer configuration such as the
// "pre_tokenizer" object of a tokenizer.json. Keys match regardless of case
// and underscores, so "add_prefix_space" and "addPrefixSpace" are the same
// key.
type Config map[string]any

func normalizeKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", ""))
}

// Value returns the raw value stored under key. An exact match wins;
// otherwise the first matching alias in sorted key order is used.
func (c Config) Value(key string) (any, bool) {
	if v, ok := c[key]; ok {
		return v, true
	}

	want := normalizeKey(key)
	for _, k := range slices.Sorted(maps.Keys(c)) {
		if normalizeKey(k) == want {
			return c[k], true
		}
	}

	return nil, false
}

func (c Config) Has(key string) bool {
	_, ok := c.Value(key)
	return ok
}

func keyValue[T any](c Config, key string, defaultValue ...T) (T, bool) {
	v, ok := c.Value(key)
	if ok {
		if val, ok := v.(T); ok {
			return val, true
		}

		slog.Debug("pretokenizer config value has unexpected type, using default", "key", key, "value", v, "default", defaultValue[0])
	}

	return defaultValue[0], false
}

func (c Config) String(key string, defaultValue ...string) string {
	val, _ := keyValue(c, key, append(defaultValue, "")...)
	return val
}

func (c Config) Bool(key string, defaultValue ...bool) bool {
	val, _ := keyValue(c, key, append(defaultValue, false)...)
	return val
}

// Type is the "type" discriminator, e.g. "ByteLevel".
func (c Config) Type() string {
	return c.String("type")
}

// Config returns the nested object under key.
func (c Config) Config(key string) (Config, bool) {
	v, ok := c.Value(key)
	if !ok {
		return nil, false
	}
	return asConfig(v)
}

// Configs returns the list of nested objects under key. Entries that are
// not objects are skipped.
func (c Config) Configs(key string) []Config {
	v, ok := c.Value(key)
	if !ok {
		return nil
	}

	var items []any
	switch v := v.(type) {
	case []any:
		items = v
	case []map[string]any:
		for _, m := range v {
			items = append(items, m)
		}
	case []Config:
		return v
	}

	configs := make([]Config, 0, len(items))
	for _, item := range items {
		if cfg, ok := asConfig(item); ok {
			configs = append(configs, cfg)
		}
	}
	return configs
}

func asConfig(v any) (Config, bool) {
	switch v := v.(type) {
	case Config:
		return v, true
	case map[string]any:
		return Config(v), true
	case map[any]any:
		cfg := make(Config, len(v))
		for k, val := range v {
			if s, ok := k.(string); ok {
				cfg[s] = val
			}
		}
		return cfg, true
	}
	return nil, false
}

// Decode copies the entry under key into v, matching struct fields and
// map keys the same way Value does.
func (c Config) Decode(key string, v any) error {
	raw, ok := c.Value(key)
	if !ok {
		return ErrMissingKey
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: v,
		MatchName: func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		},
	})
	if err != nil {
		return err
	}

	if cfg, ok := asConfig(raw); ok {
		raw = cfg.canonical()
	}

	return dec.Decode(raw)
}

// canonical drops every alias but the first in sorted key order so
// decoding never depends on map iteration order.
func (c Config) canonical() Config {
	out := make(Config, len(c))
	seen := make(map[string]bool, len(c))
	for _, k := range slices.Sorted(maps.Keys(c)) {
		if n := normalizeKey(k); !seen[n] {
			seen[n] = true
			out[k] = c[k]
		}
	}
	return out
}

func resolveByteLevel(c Config) (PreTokenizer, error) {
	return NewByteLevel(c.Bool("add_prefix_space", false), c.Bool("use_regex", true)), nil
}

func resolveDigits(c Config) (PreTokenizer, error) {
	return NewDigits(c.Bool("individual_digits", false)), nil
}

func resolvePunctuation(c Config) (PreTokenizer, error) {
	behavior := Isolated
	if s := c.String("behavior"); s != "" {
		if b, err := ParseSplitBehavior(s); err == nil {
			behavior = b
		} else {
			slog.Debug("ignoring punctuation behavior", "error", err)
		}
	}

	return NewPunctuation(behavior), nil
}

func resolveSplit(c Config) (PreTokenizer, error) {
	var pc struct {
		Regex  *string
		String *string
	}
	if err := c.Decode("pattern", &pc); errors.Is(err, ErrMissingKey) {
		return nil, &ConfigError{Type: "Split", Key: "pattern", Err: err}
	} else if err != nil {
		return nil, &ConfigError{Type: "Split", Key: "pattern", Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)}
	}

	var pattern Pattern
	var err error
	switch {
	case pc.Regex != nil:
		pattern, err = NewRegex(*pc.Regex)
	case pc.String != nil:
		pattern, err = NewLiteral(*pc.String, c.Bool("case_insensitive", false))
	default:
		return nil, &ConfigError{Type: "Split", Key: "pattern", Err: fmt.Errorf("%w: want String or Regex", ErrMissingKey)}
	}
	if err != nil {
		return nil, &ConfigError{Type: "Split", Key: "pattern", Err: err}
	}

	behavior := Isolated
	if s := c.String("behavior"); s != "" {
		if b, err := ParseSplitBehavior(s); err == nil {
			behavior = b
		} else {
			slog.Debug("ignoring split behavior", "error", err)
		}
	}

	return NewSplit(pattern.Inverted(c.Bool("invert", false)), behavior), nil
}

func resolveMetaspace(c Config) (PreTokenizer, error) {
	v, ok := c.Value("replacement")
	if !ok {
		return nil, &ConfigError{Type: "Metaspace", Key: "replacement", Err: ErrMissingKey}
	}

	s, _ := v.(string)
	replacement, size := utf8.DecodeRuneInString(s)
	if s == "" || size != len(s) || replacement == utf8.RuneError {
		return nil, &ConfigError{Type: "Metaspace", Key: "replacement", Err: fmt.Errorf("%w: want a single character, got %v", ErrInvalidValue, v)}
	}

	scheme := PrependNever
	if c.Bool("add_prefix_space", true) {
		scheme = PrependAlways
	}

	if s := c.String("prepend_scheme"); s != "" {
		if p, err := ParsePrependScheme(s); err == nil {
			scheme = p
		} else {
			slog.Debug("ignoring prepend scheme, falling back to add_prefix_space", "error", err)
		}
	}

	return NewMetaspace(replacement, scheme, c.Bool("split", true)), nil
}

func resolveBert(c Config) (PreTokenizer, error) {
	if !c.Has("cjk_ranges") {
		return NewBert(nil), nil
	}

	var ranges [][2]rune
	if err := c.Decode("cjk_ranges", &ranges); err != nil {
		slog.Debug("ignoring cjk_ranges, want [[lo, hi], ...]", "error", err)
		return NewBert(nil), nil
	}

	for _, r := range ranges {
		if r[0] < 0 || r[0] > r[1] || r[1] > unicode.MaxRune {
			slog.Debug("ignoring cjk_ranges, invalid range", "range", r)
			return NewBert(nil), nil
		}
	}

	return NewBert(CJKTable(ranges)), nil
}

func resolveSequence(c Config) (PreTokenizer, error) {
	configs := c.Configs("pretokenizers")
	seq := make(Sequence, 0, len(configs))
	for i, cfg := range configs {
		pt, err := New(cfg)
		if err != nil {
			return nil, &ConfigError{Type: "Sequence", Key: fmt.Sprintf("pretokenizers[%d]", i), Err: err}
		}

		seq = append(seq, pt)
	}

	return seq, nil
}
