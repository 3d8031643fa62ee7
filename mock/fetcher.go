package mock

import (
	"context"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

var (
	_ crossmcp.Fetcher           = (*Fetcher)(nil)
	_ crossmcp.RepositoryFetcher = (*RepositoryFetcher)(nil)
	_ crossmcp.SourceFetcher     = (*SourceFetcher)(nil)
	_ crossmcp.Normalizer        = (*Normalizer)(nil)
	_ crossmcp.DomainLimiter     = (*DomainLimiter)(nil)
)

// Fetcher is a mock implementation of crossmcp.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// RepositoryFetcher is a mock implementation of crossmcp.RepositoryFetcher.
type RepositoryFetcher struct {
	FetchFileFn func(ctx context.Context, repo crossmcp.RepoRef, path string) (string, error)
}

func (f *RepositoryFetcher) FetchFile(ctx context.Context, repo crossmcp.RepoRef, path string) (string, error) {
	return f.FetchFileFn(ctx, repo, path)
}

// SourceFetcher is a mock implementation of crossmcp.SourceFetcher.
type SourceFetcher struct {
	FetchSourceFn func(ctx context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error)
}

func (f *SourceFetcher) FetchSource(ctx context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
	return f.FetchSourceFn(ctx, src)
}

// Normalizer is a mock implementation of crossmcp.Normalizer.
type Normalizer struct {
	NormalizeFn func(raw *crossmcp.RawContent) (*crossmcp.Document, error)
}

func (n *Normalizer) Normalize(raw *crossmcp.RawContent) (*crossmcp.Document, error) {
	return n.NormalizeFn(raw)
}

// DomainLimiter is a mock implementation of crossmcp.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
