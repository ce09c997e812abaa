package pretokenizer

import (
	"errors"
	"fmt"
)

var (
	ErrMissingKey     = errors.New("missing required key")
	ErrInvalidValue   = errors.New("invalid value")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrUnknownType    = errors.New("unknown pre-tokenizer type")
)

// ConfigError reports a configuration that cannot be turned into a
// pre-tokenizer. It is only ever returned at construction time.
type ConfigError struct {
	Type string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("pretokenizer %s: %s: %v", e.Type, e.Key, e.Err)
	}

	return fmt.Sprintf("pretokenizer %s: %v", e.Type, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
