package mock

import (
	"context"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

var (
	_ crossmcp.SearchService = (*SearchService)(nil)
	_ crossmcp.Ranker        = (*Ranker)(nil)
	_ crossmcp.Matcher       = (*Matcher)(nil)
)

// SearchService is a mock implementation of crossmcp.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, opts crossmcp.SearchOptions) ([]*crossmcp.ScoredResult, error)
}

func (s *SearchService) Search(ctx context.Context, opts crossmcp.SearchOptions) ([]*crossmcp.ScoredResult, error) {
	return s.SearchFn(ctx, opts)
}

// Ranker is a mock implementation of crossmcp.Ranker.
type Ranker struct {
	BuildFn func(docs []*crossmcp.Document, keys []crossmcp.SearchKey) (crossmcp.Matcher, error)
}

func (r *Ranker) Build(docs []*crossmcp.Document, keys []crossmcp.SearchKey) (crossmcp.Matcher, error) {
	return r.BuildFn(docs, keys)
}

// Matcher is a mock implementation of crossmcp.Matcher.
type Matcher struct {
	MatchFn func(query string) []*crossmcp.Match
}

func (m *Matcher) Match(query string) []*crossmcp.Match {
	return m.MatchFn(query)
}
