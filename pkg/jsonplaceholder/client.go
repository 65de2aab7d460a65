/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package jsonplaceholder

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	// DefaultBaseURL is the public JSONPlaceholder service.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	// DefaultTimeout bounds a single request when no HTTP client is provided.
	DefaultTimeout = 30 * time.Second
)

// Client issues requests against a JSONPlaceholder compatible service.
// It is stateless beyond its configuration and safe for concurrent use.
type Client struct {
	baseURL      string
	client       *http.Client
	endpoints    *Endpoints
	logger       logr.Logger
	logRequests  bool
	logResponses bool
}

// Option modifies client construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client = &http.Client{
			Timeout: timeout,
		}
	}
}

// WithLogger sets where request diagnostics go, by default they are discarded.
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestLogging logs every completed request.
func WithRequestLogging(enabled bool) Option {
	return func(c *Client) {
		c.logRequests = enabled
	}
}

// WithResponseLogging logs every non-empty response body.
func WithResponseLogging(enabled bool) Option {
	return func(c *Client) {
		c.logResponses = enabled
	}
}

// New returns a new client, an empty base URL selects the public service.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		endpoints: NewEndpoints(),
		logger:    logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetPosts retrieves all posts.
func (c *Client) GetPosts(ctx context.Context) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Posts())
}

// GetPost retrieves a single post.  A missing post is not an error, the
// response is returned as the server sent it.
func (c *Client) GetPost(ctx context.Context, id int) (*Response, error) {
	return c.doRequest(ctx, http.MethodGet, c.endpoints.Post(id))
}

// ListPosts retrieves and decodes all posts, the raw body is returned
// alongside for schema validation.
func (c *Client) ListPosts(ctx context.Context) ([]Post, []byte, error) {
	resp, err := c.GetPosts(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := c.expectOK(http.MethodGet, c.endpoints.Posts(), resp); err != nil {
		return nil, resp.Body, err
	}

	posts, err := resp.Posts()
	if err != nil {
		return nil, resp.Body, err
	}

	return posts, resp.Body, nil
}

// FetchPost retrieves and decodes a single post.
func (c *Client) FetchPost(ctx context.Context, id int) (*Post, error) {
	resp, err := c.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := c.expectOK(http.MethodGet, c.endpoints.Post(id), resp); err != nil {
		return nil, err
	}

	return resp.Post()
}

func (c *Client) expectOK(method, path string, resp *Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	c.logger.Info("unexpected status", "method", method, "path", path, "expected", http.StatusOK, "status", resp.StatusCode, "traceID", resp.TraceID)

	return &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
		TraceID:    resp.TraceID,
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string) (*Response, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error(err, "http request failed", "method", method, "path", path, "duration", duration, "traceID", traceID)
		return nil, fmt.Errorf("http request failed (trace ID: %s): %w", traceID, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(err, "reading response body", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceID", traceID)
		return nil, fmt.Errorf("reading response body (trace ID: %s): %w", traceID, err)
	}

	if c.logRequests {
		c.logger.Info("request complete", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceID", traceID)
	}

	if c.logResponses && len(body) > 0 {
		c.logger.Info("response body", "method", method, "path", path, "body", string(body))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		Duration:   duration,
		TraceID:    traceID,
	}, nil
}

// generateTraceID creates a new W3C trace ID.
// A fresh one per request means a failure can be found in the server logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}
