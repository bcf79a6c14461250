// SPDX-License-Identifier: MPL-2.0

// Package download fetches remote text resources, such as the reset and core
// stylesheets a project does not ship itself.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// defaultMaxBytes bounds the size of a fetched document (5 MB).
	defaultMaxBytes = 5 << 20

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "unistylus/dev"
)

// ErrTooLarge is returned when a response body exceeds the size limit.
var ErrTooLarge = errors.New("response too large")

type (
	// StatusError is returned for non-200 responses.
	StatusError struct {
		URL        string
		StatusCode int
	}

	// Client downloads text over HTTP.
	Client struct {
		httpClient *http.Client
		userAgent  string
		maxBytes   int64
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// Error formats the failed URL and status.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxies.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(d *Client) {
		d.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(d *Client) {
		d.userAgent = ua
	}
}

// WithMaxBytes overrides the response size limit.
func WithMaxBytes(n int64) ClientOption {
	return func(d *Client) {
		d.maxBytes = n
	}
}

// NewClient creates a Client with a 30s timeout and a 5 MB response limit.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		maxBytes:   defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchText downloads rawURL and returns its body as text.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("fetch %q: not an http(s) URL", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/plain, text/x-scss, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	// Read one byte past the limit to tell "exactly at limit" from "over".
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("fetch %s: reading body: %w", rawURL, err)
	}
	if int64(len(body)) > c.maxBytes {
		return "", fmt.Errorf("fetch %s: %w (limit %d bytes)", rawURL, ErrTooLarge, c.maxBytes)
	}
	return string(body), nil
}
