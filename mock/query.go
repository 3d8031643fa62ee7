package mock

import (
	"context"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

var _ crossmcp.QueryService = (*QueryService)(nil)

// QueryService is a mock implementation of crossmcp.QueryService.
type QueryService struct {
	SearchDocumentsFn func(ctx context.Context, query, category string, limit int) ([]*crossmcp.ScoredResult, error)
	DocumentByIDFn    func(ctx context.Context, id string) (*crossmcp.Document, error)
	TestnetInfoFn     func(ctx context.Context, kind string) ([]*crossmcp.TestnetInfo, error)
	GitHubResourcesFn func(ctx context.Context, opts crossmcp.GitHubResourcesOptions) ([]*crossmcp.Document, error)
	CategoriesFn      func() []crossmcp.Category
}

func (s *QueryService) SearchDocuments(ctx context.Context, query, category string, limit int) ([]*crossmcp.ScoredResult, error) {
	return s.SearchDocumentsFn(ctx, query, category, limit)
}

func (s *QueryService) DocumentByID(ctx context.Context, id string) (*crossmcp.Document, error) {
	return s.DocumentByIDFn(ctx, id)
}

func (s *QueryService) TestnetInfo(ctx context.Context, kind string) ([]*crossmcp.TestnetInfo, error) {
	return s.TestnetInfoFn(ctx, kind)
}

func (s *QueryService) GitHubResources(ctx context.Context, opts crossmcp.GitHubResourcesOptions) ([]*crossmcp.Document, error) {
	return s.GitHubResourcesFn(ctx, opts)
}

func (s *QueryService) Categories() []crossmcp.Category {
	return s.CategoriesFn()
}
