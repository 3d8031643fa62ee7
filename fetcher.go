package crossmcp

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases held resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// RepositoryFetcher retrieves file contents from a source code repository.
type RepositoryFetcher interface {
	// FetchFile returns the decoded contents of path in repo.
	// Returns ENOTFOUND if the file does not exist.
	FetchFile(ctx context.Context, repo RepoRef, path string) (string, error)
}

// Format describes the markup of fetched content.
type Format string

// Raw content formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatCode     Format = "code"
)

// RawContent is the unprocessed payload fetched for a source.
type RawContent struct {
	Source *Source
	URL    string
	Body   string
	Format Format
}

// SourceFetcher fetches the raw payload of any registry source.
type SourceFetcher interface {
	FetchSource(ctx context.Context, src *Source) (*RawContent, error)
}

// Normalizer turns raw content into a document.
type Normalizer interface {
	Normalize(raw *RawContent) (*Document, error)
}

// DomainLimiter rate limits requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, domain string) error
}
