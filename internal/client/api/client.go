// Package api is the CLI's HTTP client for the companion backend. It
// attaches the bearer token, decodes the response envelope, and turns
// failures into errors carrying the server-provided message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrUnreachable marks transport-level failures, as opposed to responses
// the server actually produced.
var ErrUnreachable = errors.New("cannot reach server")

// TokenProvider supplies the current bearer token; an empty string means
// no session. The session store satisfies it.
type TokenProvider interface {
	Token() string
}

// Envelope is the response wrapper every backend endpoint uses.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Token   string          `json:"token"`
}

type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenProvider
}

func New(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
	}
}

// do performs one request. A non-2xx status becomes an error with the
// server message, or "HTTP <status>" when the body carried none. There are
// no automatic retries.
func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var env Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}
	return &env, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func decodeData(env *Envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}
