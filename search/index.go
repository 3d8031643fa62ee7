// Package search ranks snapshot documents against free-text queries.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"golang.org/x/sync/singleflight"
)

// DefaultExpiry is how long a build is served before it is rebuilt.
const DefaultExpiry = 5 * time.Minute

// Ensure Index implements crossmcp.SearchService at compile time.
var _ crossmcp.SearchService = (*Index)(nil)

// build is an immutable matcher over one document snapshot.
type build struct {
	matcher crossmcp.Matcher
	builtAt time.Time
}

// Index serves ranked search over the documents of a DocumentService.
// Its build expires on its own timer, independent of the store.
type Index struct {
	Documents crossmcp.DocumentService
	Ranker    crossmcp.Ranker
	Keys      []crossmcp.SearchKey
	Expiry    time.Duration
	Now       func() time.Time
	Logger    *slog.Logger

	current atomic.Pointer[build]
	group   singleflight.Group
}

// NewIndex returns an Index with the default keys and expiry.
func NewIndex(docs crossmcp.DocumentService, ranker crossmcp.Ranker) *Index {
	return &Index{
		Documents: docs,
		Ranker:    ranker,
		Keys:      crossmcp.DefaultSearchKeys,
		Expiry:    DefaultExpiry,
		Now:       time.Now,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// BuiltAt returns when the current build was made, or the zero time.
func (idx *Index) BuiltAt() time.Time {
	if b := idx.current.Load(); b != nil {
		return b.builtAt
	}
	return time.Time{}
}

func (idx *Index) stale() bool {
	b := idx.current.Load()
	return b == nil || idx.now().Sub(b.builtAt) >= idx.Expiry
}

// RebuildIfStale rebuilds the matcher when the current build has expired.
// Concurrent callers share one rebuild, which is not canceled when one
// of them gives up. The new build replaces the old one only once
// complete; on failure the old build stays in place.
// Returns EUNAVAILABLE if the documents could not be loaded or indexed.
func (idx *Index) RebuildIfStale(ctx context.Context) error {
	if !idx.stale() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ch := idx.group.DoChan("rebuild", func() (any, error) {
		if !idx.stale() {
			return nil, nil
		}
		return nil, idx.Rebuild(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Rebuild builds a matcher over the current documents and swaps it in.
func (idx *Index) Rebuild(ctx context.Context) error {
	begin := time.Now()
	docs, err := idx.Documents.FindDocuments(ctx, crossmcp.DocumentFilter{})
	if err != nil {
		return crossmcp.Errorf(crossmcp.EUNAVAILABLE, "search index unavailable: %v", err)
	}
	if len(docs) == 0 {
		return crossmcp.Errorf(crossmcp.EUNAVAILABLE, "search index unavailable: no documents loaded")
	}
	m, err := idx.Ranker.Build(docs, idx.Keys)
	if err != nil {
		return crossmcp.Errorf(crossmcp.EUNAVAILABLE, "search index unavailable: %v", err)
	}
	idx.current.Store(&build{matcher: m, builtAt: idx.now()})

	idx.logger().Info("rebuilt search index",
		"documents", len(docs),
		"duration", time.Since(begin),
	)
	return nil
}

// Search returns documents matching opts.Query, best first. Results are
// filtered by category after ranking, so filtering never reorders them.
func (idx *Index) Search(ctx context.Context, opts crossmcp.SearchOptions) ([]*crossmcp.ScoredResult, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "search query required")
	}
	limit := crossmcp.ClampLimit(opts.Limit)

	if err := idx.RebuildIfStale(ctx); err != nil {
		return nil, err
	}
	b := idx.current.Load()
	if b == nil {
		return nil, crossmcp.Errorf(crossmcp.EUNAVAILABLE, "search index unavailable")
	}

	results := make([]*crossmcp.ScoredResult, 0, limit)
	for _, m := range b.matcher.Match(opts.Query) {
		if opts.Category != "" && opts.Category != crossmcp.CategoryAll && m.Document.Category != opts.Category {
			continue
		}
		results = append(results, &crossmcp.ScoredResult{
			Document:   m.Document,
			Score:      m.Score,
			Highlights: Highlights(m.Document.Content, m.Hits),
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

func (idx *Index) now() time.Time {
	if idx.Now == nil {
		return time.Now()
	}
	return idx.Now()
}

func (idx *Index) logger() *slog.Logger {
	if idx.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return idx.Logger
}
