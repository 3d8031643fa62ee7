package mock

import (
	"context"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

var _ crossmcp.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of crossmcp.DocumentService.
type DocumentService struct {
	FindDocumentByIDFn func(ctx context.Context, id string) (*crossmcp.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter crossmcp.DocumentFilter) ([]*crossmcp.Document, error)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*crossmcp.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter crossmcp.DocumentFilter) ([]*crossmcp.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}
