// Package http implements fetching, sitemap discovery and the HTTP
// transport of the server on top of net/http.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Defaults for outgoing requests.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultUserAgent    = "cross-mcp (+https://github.com/jeeu-dev/cross-mcp)"

	// MaxBodySize bounds how much of a response is read.
	MaxBodySize = 10 << 20
)

// Ensure Fetcher implements crossmcp.Fetcher at compile time.
var _ crossmcp.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain HTTP GET requests. It does not run
// JavaScript; use rod.Fetcher for client-rendered sites.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the client timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{Timeout: f.timeout}
	return f
}

// Client returns the underlying HTTP client.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// Fetch returns the body of url. A 404 is reported as ENOTFOUND, any
// other non-200 status as a plain error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, err := get(ctx, f.client, url, f.userAgent)
	if err != nil {
		return "", err
	}
	defer body.Close()

	b, err := io.ReadAll(io.LimitReader(body, MaxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(b), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func get(ctx context.Context, client *http.Client, url, userAgent string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, crossmcp.Errorf(crossmcp.ENOTFOUND, "HTTP 404 for %s", url)
	default:
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
}
