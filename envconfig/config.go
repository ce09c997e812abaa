package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Var returns an environment variable stripped of leading and trailing
// quotes or spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Bool returns a getter for a boolean variable. Any non-empty value that
// does not parse as a boolean counts as true.
func Bool(k string) func() bool {
	return func() bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}

			return b
		}

		return false
	}
}

// Uint returns a getter for an unsigned variable with a default.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}

		return defaultValue
	}
}

var (
	// NoColor disables table borders and alignment in CLI output.
	NoColor = Bool("PRETOKENIZE_NOCOLOR")
)

// MaxLineBytes bounds a single stdin line read by the CLI. Zero falls back
// to the default.
func MaxLineBytes() uint {
	const defaultMaxLine = 1 << 20
	if n := Uint("PRETOKENIZE_MAX_LINE", defaultMaxLine)(); n > 0 {
		return n
	}

	slog.Warn("invalid environment variable, using default", "key", "PRETOKENIZE_MAX_LINE", "value", 0, "default", defaultMaxLine)
	return defaultMaxLine
}

// LogLevel returns the log level from PRETOKENIZE_DEBUG: unset or false is
// info, true or 1 is debug, 2 is trace.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("PRETOKENIZE_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Host returns the scheme and address from PRETOKENIZE_HOST. Without a
// scheme the default is http://127.0.0.1:11450; an explicit http or https
// scheme defaults the port to 80 or 443.
func Host() *url.URL {
	defaultPort := "11450"

	s := Var("PRETOKENIZE_HOST")
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// AllowedOrigins returns the CORS origins from PRETOKENIZE_ORIGINS plus
// the local defaults.
func AllowedOrigins() (origins []string) {
	if s := Var("PRETOKENIZE_ORIGINS"); s != "" {
		origins = strings.Split(s, ",")
	}

	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			fmt.Sprintf("http://%s", origin),
			fmt.Sprintf("https://%s", origin),
			fmt.Sprintf("http://%s", net.JoinHostPort(origin, "*")),
			fmt.Sprintf("https://%s", net.JoinHostPort(origin, "*")),
		)
	}

	return origins
}

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"PRETOKENIZE_DEBUG":    {"PRETOKENIZE_DEBUG", LogLevel(), "Show additional debug information (e.g. PRETOKENIZE_DEBUG=1, 2 for trace)"},
		"PRETOKENIZE_HOST":     {"PRETOKENIZE_HOST", Host(), "IP address and port for the HTTP server (default http://127.0.0.1:11450)"},
		"PRETOKENIZE_MAX_LINE": {"PRETOKENIZE_MAX_LINE", MaxLineBytes(), "Maximum size in bytes of a line read from stdin"},
		"PRETOKENIZE_NOCOLOR":  {"PRETOKENIZE_NOCOLOR", NoColor(), "Print plain tables"},
		"PRETOKENIZE_ORIGINS":  {"PRETOKENIZE_ORIGINS", AllowedOrigins(), "A comma separated list of allowed origins"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
