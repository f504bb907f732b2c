// Package client is the single outbound HTTP gateway to the EDGE API.
// It attaches the bearer token of the active identity session, applies
// per-operation timeouts, and decodes server error details into APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edgehq/edge-cli/internal/metrics"
	"github.com/google/uuid"
)

// Client talks to the EDGE API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// token returns the current bearer token, or "" when the session is
	// anonymous. Looked up per request so a login mid-process sticks.
	token func() string

	// timeout is the default per-request budget; aiTimeout applies to
	// operations that trigger server-side AI work (onboarding, chat,
	// suggestion generation, uploads).
	timeout   time.Duration
	aiTimeout time.Duration

	// collector, when set, aggregates per-endpoint request timings.
	collector *metrics.Collector
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token source.
func WithToken(token func() string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeouts overrides the default and AI-operation timeouts.
func WithTimeouts(def, ai time.Duration) Option {
	return func(c *Client) {
		if def > 0 {
			c.timeout = def
		}
		if ai > 0 {
			c.aiTimeout = ai
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches a timing collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) { c.collector = collector }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
		token:      func() string { return "" },
		timeout:    15 * time.Second,
		aiTimeout:  90 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do executes one JSON request. body is marshalled when non-nil; the
// response is decoded into dest when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any, timeout time.Duration) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, method, path, query, reqBody, "application/json", timeout)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := checkStatus(resp.StatusCode, respBody); err != nil {
		return err
	}

	if dest != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dest); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// send issues the request with auth and timeout applied. Callers own the
// response body.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, timeout time.Duration) (*http.Response, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("execute request: %w", err)
	}
	duration := time.Since(start)
	if c.collector != nil {
		c.collector.RecordTiming(method+" "+opFamily(path), duration)
	}
	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"request_id", requestID,
	)

	// Release the timeout once the body has been consumed.
	resp.Body = &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

// opFamily collapses a request path to its API family so timings for
// /api/tasks/42 and /api/tasks/43 land in one bucket.
func opFamily(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) >= 2 && parts[0] == "api" {
		return "/api/" + parts[1]
	}
	return "/" + parts[0]
}

func unmarshalJSON(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// Health checks API liveness.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil, 0)
}
