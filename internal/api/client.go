package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/timoelan/crudai/internal/auth"
	"github.com/timoelan/crudai/internal/configuration"
	"github.com/timoelan/crudai/internal/debug"
)

// Client wraps the backend's REST surface. Every operation degrades to a
// sentinel on failure (empty slice, nil, false): transport errors and
// non-2xx statuses are logged here and never propagated, so callers only
// observe "got a value" vs "got nothing".
type Client struct {
	baseURL string
	gate    auth.Gate
	http    *http.Client
	log     *slog.Logger
}

// New builds a client against the configured base endpoint.
func New(config *configuration.Config, gate auth.Gate) *Client {
	return &Client{
		baseURL: strings.TrimRight(config.APIBaseURL, "/"),
		gate:    gate,
		http:    &http.Client{Timeout: time.Duration(config.RequestTimeout) * time.Second},
		log:     debug.GetLogger(),
	}
}

// authenticated reports whether requests should be attempted at all.
func (c *Client) authenticated() bool {
	return c.gate.State().Authenticated
}

// do runs one request against the backend. A bearer token is attached when
// the gate yields one.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.gate.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Logged but never triggers re-authentication.
		c.log.Warn("unauthorized request, login may be required", "method", method, "path", path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
