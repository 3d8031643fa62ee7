// Package slog decorates services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

var (
	_ crossmcp.Fetcher           = (*LoggingFetcher)(nil)
	_ crossmcp.SourceFetcher     = (*LoggingSourceFetcher)(nil)
	_ crossmcp.RepositoryFetcher = (*LoggingRepositoryFetcher)(nil)
)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   crossmcp.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next crossmcp.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingSourceFetcher logs every source fetch.
type LoggingSourceFetcher struct {
	next   crossmcp.SourceFetcher
	logger *slog.Logger
}

// NewLoggingSourceFetcher creates a new LoggingSourceFetcher.
func NewLoggingSourceFetcher(next crossmcp.SourceFetcher, logger *slog.Logger) *LoggingSourceFetcher {
	return &LoggingSourceFetcher{next: next, logger: logger}
}

// FetchSource delegates to the wrapped fetcher and logs the result.
func (f *LoggingSourceFetcher) FetchSource(ctx context.Context, src *crossmcp.Source) (raw *crossmcp.RawContent, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"kind", src.Kind,
			"path", src.Path,
			"duration", time.Since(begin),
		}
		if src.Kind == crossmcp.SourceRepositoryFile {
			attrs = append(attrs, "repo", src.Repo.String())
		}
		if raw != nil {
			attrs = append(attrs, "format", raw.Format, "bytes", len(raw.Body))
		}
		if err != nil {
			f.logger.Warn("source fetch", append(attrs, "err", err)...)
			return
		}
		f.logger.Debug("source fetch", attrs...)
	}(time.Now())
	return f.next.FetchSource(ctx, src)
}

// LoggingRepositoryFetcher logs repository file reads.
type LoggingRepositoryFetcher struct {
	next   crossmcp.RepositoryFetcher
	logger *slog.Logger
}

// NewLoggingRepositoryFetcher creates a new LoggingRepositoryFetcher.
func NewLoggingRepositoryFetcher(next crossmcp.RepositoryFetcher, logger *slog.Logger) *LoggingRepositoryFetcher {
	return &LoggingRepositoryFetcher{next: next, logger: logger}
}

// FetchFile delegates to the wrapped fetcher and logs the result.
func (f *LoggingRepositoryFetcher) FetchFile(ctx context.Context, repo crossmcp.RepoRef, path string) (content string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("repository fetch",
			"repo", repo.String(),
			"ref", repo.Ref,
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchFile(ctx, repo, path)
}
