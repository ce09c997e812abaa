// Package api implements the client-side API for the pre-tokenizer server
// started by "pretokenize serve".
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"

	"github.com/ollama/pretokenize/envconfig"
	"github.com/ollama/pretokenize/version"
)

// Client talks to a pre-tokenizer server. Use ClientFromEnvironment or
// NewClient to create one.
type Client struct {
	base *url.URL
	http *http.Client
}

func checkError(resp *http.Response, body []byte) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiError := StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	if err := json.Unmarshal(body, &apiError); err != nil {
		apiError.ErrorMessage = string(body)
	}

	return apiError
}

// ClientFromEnvironment creates a client for the server at
// PRETOKENIZE_HOST.
func ClientFromEnvironment() (*Client, error) {
	return NewClient(envconfig.Host(), http.DefaultClient), nil
}

func NewClient(base *url.URL, http *http.Client) *Client {
	return &Client{
		base: base,
		http: http,
	}
}

func (c *Client) do(ctx context.Context, method, path string, reqData, respData any) error {
	var reqBody io.Reader
	if reqData != nil {
		data, err := json.Marshal(reqData)
		if err != nil {
			return err
		}

		reqBody = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reqBody)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", fmt.Sprintf("pretokenize/%s (%s %s) Go/%s", version.Version, runtime.GOARCH, runtime.GOOS, runtime.Version()))

	respObj, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer respObj.Body.Close()

	respBody, err := io.ReadAll(respObj.Body)
	if err != nil {
		return err
	}

	if err := checkError(respObj, respBody); err != nil {
		return err
	}

	if len(respBody) > 0 && respData != nil {
		if err := json.Unmarshal(respBody, respData); err != nil {
			return err
		}
	}
	return nil
}

// PreTokenize splits req.Text on the server.
func (c *Client) PreTokenize(ctx context.Context, req *PreTokenizeRequest) (*PreTokenizeResponse, error) {
	var resp PreTokenizeResponse
	if err := c.do(ctx, http.MethodPost, "/api/pretokenize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns the pre-tokenizer types the server accepts.
func (c *Client) List(ctx context.Context) (*ListResponse, error) {
	var lr ListResponse
	if err := c.do(ctx, http.MethodGet, "/api/pretokenizers", nil, &lr); err != nil {
		return nil, err
	}
	return &lr, nil
}

// Heartbeat checks if the server has started and is responsive; if yes, it
// returns nil, otherwise an error.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodHead, "/", nil, nil)
}
