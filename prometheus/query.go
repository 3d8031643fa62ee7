package prometheus

import (
	"context"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Operation label values.
const (
	OpSearchDocuments = "search_documents"
	OpDocumentByID    = "document_by_id"
	OpTestnetInfo     = "testnet_info"
	OpGitHubResources = "github_resources"
)

var _ crossmcp.QueryService = (*QueryService)(nil)

// QueryService counts and times tool operations.
type QueryService struct {
	next    crossmcp.QueryService
	metrics *Metrics
}

// NewQueryService wraps next with metrics.
func NewQueryService(next crossmcp.QueryService, metrics *Metrics) *QueryService {
	return &QueryService{next: next, metrics: metrics}
}

func (s *QueryService) observe(op string, begin time.Time, err error) {
	s.metrics.QueryDuration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
	s.metrics.Queries.WithLabelValues(op, status(err)).Inc()
}

func (s *QueryService) SearchDocuments(ctx context.Context, query, category string, limit int) (results []*crossmcp.ScoredResult, err error) {
	defer func(begin time.Time) { s.observe(OpSearchDocuments, begin, err) }(time.Now())
	return s.next.SearchDocuments(ctx, query, category, limit)
}

func (s *QueryService) DocumentByID(ctx context.Context, id string) (doc *crossmcp.Document, err error) {
	defer func(begin time.Time) { s.observe(OpDocumentByID, begin, err) }(time.Now())
	return s.next.DocumentByID(ctx, id)
}

func (s *QueryService) TestnetInfo(ctx context.Context, kind string) (records []*crossmcp.TestnetInfo, err error) {
	defer func(begin time.Time) { s.observe(OpTestnetInfo, begin, err) }(time.Now())
	return s.next.TestnetInfo(ctx, kind)
}

func (s *QueryService) GitHubResources(ctx context.Context, opts crossmcp.GitHubResourcesOptions) (docs []*crossmcp.Document, err error) {
	defer func(begin time.Time) { s.observe(OpGitHubResources, begin, err) }(time.Now())
	return s.next.GitHubResources(ctx, opts)
}

func (s *QueryService) Categories() []crossmcp.Category {
	return s.next.Categories()
}
