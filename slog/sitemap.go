package slog

import (
	"context"
	"log/slog"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

var _ crossmcp.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs source discovery. Besides the raw URL count
// it reports how many page sources the URLs collapse into and how they
// spread over categories, which is what ends up in [[sources]] stanzas.
type LoggingSitemapService struct {
	next   crossmcp.SitemapService
	logger *slog.Logger
}

func NewLoggingSitemapService(next crossmcp.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *crossmcp.URLFilter) (urls []string, err error) {
	begin := time.Now()
	urls, err = s.next.DiscoverURLs(ctx, baseURL, filter)

	attrs := []any{"base_url", baseURL, "duration", time.Since(begin)}
	if filter != nil {
		attrs = append(attrs, "include_patterns", len(filter.Include), "exclude_patterns", len(filter.Exclude))
	}
	if err != nil {
		s.logger.Warn("source discovery failed", append(attrs, "err", err)...)
		return urls, err
	}

	sources := crossmcp.SourcesFromURLs(baseURL, urls)
	categories := make(map[crossmcp.Category]int)
	for _, src := range sources {
		categories[crossmcp.DeriveCategory(src)]++
	}
	group := make([]any, 0, len(categories))
	for c, n := range categories {
		group = append(group, slog.Int(string(c), n))
	}
	attrs = append(attrs,
		"urls", len(urls),
		"sources", len(sources),
		slog.Group("categories", group...),
	)
	s.logger.Info("source discovery", attrs...)
	return urls, nil
}
