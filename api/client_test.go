package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFromEnvironment(t *testing.T) {
	cases := map[string]struct {
		value  string
		expect string
	}{
		"empty":            {value: "", expect: "http://127.0.0.1:11450"},
		"only address":     {value: "1.2.3.4", expect: "http://1.2.3.4:11450"},
		"address and port": {value: "1.2.3.4:1234", expect: "http://1.2.3.4:1234"},
		"scheme":           {value: "http://example.com:1234", expect: "http://example.com:1234"},
		"hostname":         {value: "example.com", expect: "http://example.com:11450"},
		"https":            {value: "https://example.com:1234", expect: "https://example.com:1234"},
		"https no port":    {value: "https://example.com", expect: "https://example.com:443"},
	}

	for name, tt := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("PRETOKENIZE_HOST", tt.value)

			client, err := ClientFromEnvironment()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, client.base.String())
		})
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	base, err := url.Parse(ts.URL)
	require.NoError(t, err)
	return NewClient(base, ts.Client())
}

func TestClientPreTokenize(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/pretokenize", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req PreTokenizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
		}

		assert.Equal(t, "Whitespace", req.Config["type"])
		assert.Equal(t, []string{"<s>"}, req.Specials)
		assert.Nil(t, req.FirstSection)

		json.NewEncoder(w).Encode(PreTokenizeResponse{Type: "Whitespace", Pieces: []string{"Hey", "friend!"}})
	})

	resp, err := client.PreTokenize(context.Background(), &PreTokenizeRequest{
		Config:   map[string]any{"type": "Whitespace"},
		Text:     "Hey friend!",
		Specials: []string{"<s>"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hey", "friend!"}, resp.Pieces)
}

func TestClientErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"json error", http.StatusBadRequest, `{"error": "pretokenizer Split: pattern: missing required key"}`, "pretokenizer Split: pattern: missing required key"},
		{"plain error", http.StatusInternalServerError, "boom", "boom"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.List(context.Background())

			var serr StatusError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.status, serr.StatusCode)
			assert.Equal(t, tt.message, serr.ErrorMessage)
		})
	}
}

func TestHeartbeat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.Heartbeat(context.Background()))
}

func TestStatusError(t *testing.T) {
	assert.Equal(t, "400 Bad Request: bad", StatusError{StatusCode: 400, Status: "400 Bad Request", ErrorMessage: "bad"}.Error())
	assert.Equal(t, "bad", StatusError{ErrorMessage: "bad"}.Error())
	assert.Equal(t, "unexpected status 502", StatusError{StatusCode: 502}.Error())
}
