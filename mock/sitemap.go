package mock

import (
	"context"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

var _ crossmcp.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of crossmcp.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *crossmcp.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *crossmcp.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
