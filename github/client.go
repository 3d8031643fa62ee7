// Package github fetches repository files through the GitHub contents API.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	crossmcp "github.com/jeeu-dev/cross-mcp"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds each API request.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements crossmcp.RepositoryFetcher at compile time.
var _ crossmcp.RepositoryFetcher = (*Client)(nil)

// Client reads repository files. Requests are anonymous unless a token
// is configured.
type Client struct {
	gh *gh.Client
}

// Option configures a Client.
type Option func(*options)

type options struct {
	token   string
	baseURL string
	timeout time.Duration
}

// WithToken authenticates requests with a personal access token.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithBaseURL points the client at another API endpoint, such as a
// GitHub Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout sets the request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// NewClient creates a Client.
func NewClient(opts ...Option) (*Client, error) {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	hc := &http.Client{}
	if o.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	hc.Timeout = o.timeout

	client := gh.NewClient(hc)
	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("github base url: %w", err)
		}
		client.BaseURL = u
	}
	return &Client{gh: client}, nil
}

// FetchFile returns the decoded contents of path in repo at repo.Ref, or
// the default branch when Ref is empty.
// Returns ENOTFOUND if the file does not exist and EINVALID if path is
// a directory.
func (c *Client) FetchFile(ctx context.Context, repo crossmcp.RepoRef, path string) (string, error) {
	path = strings.Trim(path, "/")
	opts := &gh.RepositoryContentGetOptions{Ref: repo.Ref}

	file, _, _, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return "", wrapError(err, repo, path)
	}
	if file == nil {
		return "", crossmcp.Errorf(crossmcp.EINVALID, "%s/%s is a directory", repo, path)
	}

	// Files over 1MB come back without inline content.
	if file.GetEncoding() == "none" {
		return c.download(ctx, repo, path, opts)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode %s/%s: %w", repo, path, err)
	}
	return content, nil
}

func (c *Client) download(ctx context.Context, repo crossmcp.RepoRef, path string, opts *gh.RepositoryContentGetOptions) (string, error) {
	rc, _, err := c.gh.Repositories.DownloadContents(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return "", wrapError(err, repo, path)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("download %s/%s: %w", repo, path, err)
	}
	return string(b), nil
}

func wrapError(err error, repo crossmcp.RepoRef, path string) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return crossmcp.Errorf(crossmcp.EUNAVAILABLE, "github rate limit exceeded until %s", rateErr.Rate.Reset.Format(time.RFC3339))
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
		return crossmcp.Errorf(crossmcp.ENOTFOUND, "%s/%s not found", repo, path)
	}
	return fmt.Errorf("github contents %s/%s: %w", repo, path, err)
}
