package slog

import (
	"context"
	"log/slog"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Ensure LoggingQueryService implements crossmcp.QueryService.
var _ crossmcp.QueryService = (*LoggingQueryService)(nil)

// LoggingQueryService logs every tool operation with its outcome.
// Invalid input and missing documents log at Info; anything else that
// fails logs at Error.
type LoggingQueryService struct {
	next   crossmcp.QueryService
	logger *slog.Logger
}

// NewLoggingQueryService creates a new LoggingQueryService.
func NewLoggingQueryService(next crossmcp.QueryService, logger *slog.Logger) *LoggingQueryService {
	return &LoggingQueryService{next: next, logger: logger}
}

func (s *LoggingQueryService) SearchDocuments(ctx context.Context, query, category string, limit int) (results []*crossmcp.ScoredResult, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "search documents", err,
			"query", query,
			"category", category,
			"limit", limit,
			"results", len(results),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.SearchDocuments(ctx, query, category, limit)
}

func (s *LoggingQueryService) DocumentByID(ctx context.Context, id string) (doc *crossmcp.Document, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "document by id", err,
			"id", id,
			"found", doc != nil,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.DocumentByID(ctx, id)
}

func (s *LoggingQueryService) TestnetInfo(ctx context.Context, kind string) (records []*crossmcp.TestnetInfo, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "testnet info", err,
			"type", kind,
			"records", len(records),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.TestnetInfo(ctx, kind)
}

func (s *LoggingQueryService) GitHubResources(ctx context.Context, opts crossmcp.GitHubResourcesOptions) (docs []*crossmcp.Document, err error) {
	defer func(begin time.Time) {
		s.log(ctx, "github resources", err,
			"type", opts.Type,
			"include_code", opts.IncludeCode,
			"resources", len(docs),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.GitHubResources(ctx, opts)
}

func (s *LoggingQueryService) Categories() []crossmcp.Category {
	return s.next.Categories()
}

func (s *LoggingQueryService) log(ctx context.Context, msg string, err error, attrs ...any) {
	level := slog.LevelInfo
	if err != nil {
		attrs = append(attrs, "err", err)
		switch crossmcp.ErrorCode(err) {
		case crossmcp.EINVALID, crossmcp.ENOTFOUND:
		default:
			level = slog.LevelError
		}
	}
	s.logger.Log(ctx, level, msg, attrs...)
}
