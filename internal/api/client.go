// Package api is the HTTP client for the Megastation REST API. It owns
// credential attachment, the public-endpoint exemption list, reaction to
// authorization failures, and the error taxonomy; the state stores above it
// never see raw HTTP.
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
)

// Client wraps an http.Client with the Megastation base URL and the
// bearer-attaching transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
	transport  *authTransport
	logger     *slog.Logger
}

// New creates a client for the API at baseURL. The returned client sends
// unauthenticated requests until Bind attaches a session.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return NewWithTransport(baseURL, timeout, logger, http.DefaultTransport)
}

// NewWithTransport creates a client with a custom underlying transport,
// used by tests.
func NewWithTransport(baseURL string, timeout time.Duration, logger *slog.Logger, base http.RoundTripper) *Client {
	transport := &authTransport{base: base}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		transport:  transport,
		logger:     logger,
	}
}

// Bind attaches the session's token source and the hook invoked on an
// authorization failure. The client is fully functional before Bind; the
// composition root still wires store and client in one fixed order, and
// Bind makes that order a non-issue rather than a latent nil dereference.
func (c *Client) Bind(tokens TokenSource, onUnauthorized func()) {
	c.transport.tokens = tokens
	c.transport.onUnauthorized = onUnauthorized
}

// BuildURL constructs the full URL for an API path.
func (c *Client) BuildURL(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

// get performs a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

// post performs a POST with a JSON body and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// do performs a request with optional extra headers and JSON body.
func (c *Client) do(ctx context.Context, method, path string, headers http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BuildURL(path), reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		}
		return networkError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode >= 400 {
		hadBearer := resp.Request != nil && resp.Request.Header.Get("Authorization") != ""
		apiErr := classify(resp.StatusCode, payload, hadBearer)
		if c.logger != nil {
			c.logger.Debug("request rejected",
				"method", method, "path", path,
				"status", resp.StatusCode, "message", apiErr.Message)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
