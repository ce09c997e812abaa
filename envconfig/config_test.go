package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost(t *testing.T) {
	cases := map[string]struct {
		value  string
		expect string
	}{
		"empty":               {"", "http://127.0.0.1:11450"},
		"only address":        {"1.2.3.4", "http://1.2.3.4:11450"},
		"only port":           {":1234", "http://:1234"},
		"address and port":    {"1.2.3.4:1234", "http://1.2.3.4:1234"},
		"hostname":            {"example.com", "http://example.com:11450"},
		"hostname and port":   {"example.com:1234", "http://example.com:1234"},
		"zero port":           {":0", "http://:0"},
		"too large port":      {":66000", "http://:11450"},
		"too small port":      {":-1", "http://:11450"},
		"ipv6 localhost":      {"[::1]", "http://[::1]:11450"},
		"ipv6 no brackets":    {"::1", "http://[::1]:11450"},
		"ipv6 + port":         {"[::1]:1337", "http://[::1]:1337"},
		"extra space":         {" 1.2.3.4 ", "http://1.2.3.4:11450"},
		"extra quotes":        {"\"1.2.3.4\"", "http://1.2.3.4:11450"},
		"extra single quotes": {"'1.2.3.4'", "http://1.2.3.4:11450"},
		"http scheme":         {"http://1.2.3.4:8080", "http://1.2.3.4:8080"},
		"http default port":   {"http://1.2.3.4", "http://1.2.3.4:80"},
		"https scheme":        {"https://example.com:1234", "https://example.com:1234"},
		"https default port":  {"https://example.com", "https://example.com:443"},
		"path":                {"https://example.com/pretokenize", "https://example.com:443/pretokenize"},
	}

	for name, tt := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("PRETOKENIZE_HOST", tt.value)
			assert.Equal(t, tt.expect, Host().String())
		})
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{
		"":       false,
		"true":   true,
		"false":  false,
		"1":      true,
		"0":      false,
		"random": true,
	}

	for value, expect := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("PRETOKENIZE_BOOL", value)
			require.Equal(t, expect, Bool("PRETOKENIZE_BOOL")())
		})
	}
}

func TestUint(t *testing.T) {
	t.Setenv("PRETOKENIZE_MAX_LINE", "")
	require.EqualValues(t, 1<<20, MaxLineBytes())

	t.Setenv("PRETOKENIZE_MAX_LINE", "4096")
	require.EqualValues(t, 4096, MaxLineBytes())

	t.Setenv("PRETOKENIZE_MAX_LINE", "-1")
	require.EqualValues(t, 1<<20, MaxLineBytes())

	t.Setenv("PRETOKENIZE_MAX_LINE", "0")
	require.EqualValues(t, 1<<20, MaxLineBytes())
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"true":  slog.LevelDebug,
		"1":     slog.LevelDebug,
		"2":     slog.Level(-8),
	}

	for value, expect := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("PRETOKENIZE_DEBUG", value)
			assert.Equal(t, expect, LogLevel())
		})
	}
}

func TestOrigins(t *testing.T) {
	t.Setenv("PRETOKENIZE_ORIGINS", "")
	origins := AllowedOrigins()
	require.Len(t, origins, 12)
	require.Contains(t, origins, "http://127.0.0.1:*")

	t.Setenv("PRETOKENIZE_ORIGINS", "http://10.0.0.1,https://example.com")
	origins = AllowedOrigins()
	require.Len(t, origins, 14)
	require.Equal(t, []string{"http://10.0.0.1", "https://example.com"}, origins[:2])
}
