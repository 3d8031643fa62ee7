// Package rod fetches pages that need JavaScript by rendering them in a
// headless Chrome driven by go-rod.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

var errClosed = crossmcp.Errorf(crossmcp.EINVALID, "fetcher closed")

// Ensure Fetcher implements crossmcp.Fetcher at compile time.
var _ crossmcp.Fetcher = (*Fetcher)(nil)

// Fetcher returns the rendered HTML of pages. Chrome is started on the
// first Fetch, not by NewFetcher.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser      *browser
	timeout      time.Duration
	waitSelector string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each render. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithMaxPages sets how many pages a browser renders before it is
// replaced. Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) { f.browser.maxPages = n }
}

// WithRemote connects to a running Chrome at the given DevTools address
// instead of launching one.
func WithRemote(addr string) Option {
	return func(f *Fetcher) { f.browser.remote = addr }
}

// WithBin sets the Chrome binary to launch.
func WithBin(path string) Option {
	return func(f *Fetcher) { f.browser.bin = path }
}

// WithWaitSelector makes Fetch wait until an element matching selector
// exists before reading the page, for sites that render content after
// the load event.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) { f.waitSelector = selector }
}

// NewFetcher creates a Fetcher. Close must be called when the Fetcher is
// no longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		browser: &browser{maxPages: DefaultMaxPages},
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to url and returns the rendered HTML.
// Returns EINVALID after Close.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	br, err := f.browser.acquire()
	if err != nil {
		return "", err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	page, err := br.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.waitSelector != "" {
		if _, err := page.Element(f.waitSelector); err != nil {
			return "", err
		}
	}
	return page.HTML()
}

// Close shuts down the browser. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browser.close()
}

// LauncherPID returns the process ID of the launched browser, or 0 when
// none is running.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}
