// Package query implements the operations exposed to AI clients on top
// of the document store and search index.
package query

import (
	"context"
	"strings"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Ensure Service implements crossmcp.QueryService at compile time.
var _ crossmcp.QueryService = (*Service)(nil)

// Service answers tool calls from the store and the search index.
type Service struct {
	Documents crossmcp.DocumentService
	Search    crossmcp.SearchService
}

// NewService returns a Service over docs and search.
func NewService(docs crossmcp.DocumentService, search crossmcp.SearchService) *Service {
	return &Service{Documents: docs, Search: search}
}

// SearchDocuments validates the category and delegates to the index.
func (s *Service) SearchDocuments(ctx context.Context, query, category string, limit int) ([]*crossmcp.ScoredResult, error) {
	c, err := crossmcp.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.Search.Search(ctx, crossmcp.SearchOptions{
		Query:    query,
		Category: c,
		Limit:    limit,
	})
}

// DocumentByID returns the document with id.
// Returns ENOTFOUND if it does not exist.
func (s *Service) DocumentByID(ctx context.Context, id string) (*crossmcp.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "document ID required")
	}
	return s.Documents.FindDocumentByID(ctx, id)
}

// TestnetInfo returns static testnet instructions.
func (s *Service) TestnetInfo(_ context.Context, kind string) ([]*crossmcp.TestnetInfo, error) {
	return crossmcp.LookupTestnetInfo(kind)
}

// GitHubResources lists repository documents in snapshot order. SDK and
// example listings narrow by document ID. Without code, content is cut
// to PreviewLength characters on copies of the cached documents.
func (s *Service) GitHubResources(ctx context.Context, opts crossmcp.GitHubResourcesOptions) ([]*crossmcp.Document, error) {
	typ, err := crossmcp.ParseGitHubResourceType(string(opts.Type))
	if err != nil {
		return nil, err
	}

	kind := crossmcp.KindRepository
	filter := crossmcp.DocumentFilter{Kind: &kind}
	switch typ {
	case crossmcp.GitHubSDK:
		filter.IDContains = "sdk"
	case crossmcp.GitHubExamples:
		filter.IDContains = "example"
	}

	docs, err := s.Documents.FindDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	if opts.IncludeCode {
		return docs, nil
	}

	out := make([]*crossmcp.Document, 0, len(docs))
	for _, doc := range docs {
		preview := doc.Clone()
		preview.Content = crossmcp.Truncate(doc.Content, crossmcp.PreviewLength)
		out = append(out, preview)
	}
	return out, nil
}

// Categories returns the accepted search category filters.
func (s *Service) Categories() []crossmcp.Category {
	out := make([]crossmcp.Category, len(crossmcp.FilterCategories))
	copy(out, crossmcp.FilterCategories)
	return out
}
