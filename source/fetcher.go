// Package source fetches the raw payload of registry sources, choosing
// the page or repository fetcher by source kind.
package source

import (
	"context"
	"path"
	"strings"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Ensure Fetcher implements crossmcp.SourceFetcher at compile time.
var _ crossmcp.SourceFetcher = (*Fetcher)(nil)

// Fetcher dispatches sources to the page or repository fetcher.
type Fetcher struct {
	BaseURL      string
	Pages        crossmcp.Fetcher
	Repositories crossmcp.RepositoryFetcher
}

// NewFetcher returns a Fetcher resolving page paths against baseURL.
func NewFetcher(baseURL string, pages crossmcp.Fetcher, repos crossmcp.RepositoryFetcher) *Fetcher {
	return &Fetcher{BaseURL: baseURL, Pages: pages, Repositories: repos}
}

// FetchSource fetches src. Pages are returned as HTML; repository files
// as markdown or code depending on their extension.
func (f *Fetcher) FetchSource(ctx context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	url := crossmcp.SourceURL(f.BaseURL, src)

	switch src.Kind {
	case crossmcp.SourceRepositoryFile:
		if f.Repositories == nil {
			return nil, crossmcp.Errorf(crossmcp.EUNAVAILABLE, "no repository fetcher configured")
		}
		body, err := f.Repositories.FetchFile(ctx, src.Repo, src.Path)
		if err != nil {
			return nil, err
		}
		return &crossmcp.RawContent{Source: src, URL: url, Body: body, Format: FormatOf(src.Path)}, nil

	default:
		if f.Pages == nil {
			return nil, crossmcp.Errorf(crossmcp.EUNAVAILABLE, "no page fetcher configured")
		}
		body, err := f.Pages.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		return &crossmcp.RawContent{Source: src, URL: url, Body: body, Format: crossmcp.FormatHTML}, nil
	}
}

// FormatOf returns the format of a repository file from its extension.
func FormatOf(p string) crossmcp.Format {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown", ".mdx":
		return crossmcp.FormatMarkdown
	}
	return crossmcp.FormatCode
}
