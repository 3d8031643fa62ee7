// Package store holds the in-memory document snapshot. The snapshot is
// rebuilt from the source registry lazily, on first access after it
// expires, and replaced in one atomic swap.
package store

import (
	"context"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	crossmcp "github.com/jeeu-dev/cross-mcp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Defaults applied by New.
const (
	DefaultExpiry       = 5 * time.Minute
	DefaultFetchTimeout = 15 * time.Second
)

// Ensure Store implements crossmcp.DocumentService at compile time.
var _ crossmcp.DocumentService = (*Store)(nil)

// Snapshot is an immutable set of documents fetched in one pass.
type Snapshot struct {
	docs        map[string]*crossmcp.Document
	order       []string
	RefreshedAt time.Time
}

// Len returns the number of documents in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Store is a lazily refreshed document cache over a source registry.
type Store struct {
	Registry   *crossmcp.Registry
	Fetcher    crossmcp.SourceFetcher
	Normalizer crossmcp.Normalizer

	// Expiry is how long a non-empty snapshot is served before the next
	// access triggers a refresh.
	Expiry time.Duration

	// FetchTimeout bounds each source fetch. Zero means no bound.
	FetchTimeout time.Duration

	// Concurrency is the number of sources fetched in parallel.
	// Values below 2 fetch sequentially.
	Concurrency int

	// RateLimiter, if set, is waited on per source host.
	RateLimiter crossmcp.DomainLimiter

	// RetryDelays are the waits between attempts of a failing source.
	RetryDelays []time.Duration

	Now    func() time.Time
	Logger *slog.Logger

	snapshot atomic.Pointer[Snapshot]
	group    singleflight.Group
}

// New returns a Store with default expiry and fetch timeout.
func New(registry *crossmcp.Registry, fetcher crossmcp.SourceFetcher, normalizer crossmcp.Normalizer) *Store {
	return &Store{
		Registry:     registry,
		Fetcher:      fetcher,
		Normalizer:   normalizer,
		Expiry:       DefaultExpiry,
		FetchTimeout: DefaultFetchTimeout,
		Concurrency:  1,
		Now:          time.Now,
		Logger:       slog.New(slog.DiscardHandler),
	}
}

// Snapshot returns the current snapshot, which may be nil before the
// first refresh.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Stats describes the current snapshot without refreshing it.
func (s *Store) Stats() crossmcp.StoreStats {
	snap := s.snapshot.Load()
	if snap == nil {
		return crossmcp.StoreStats{}
	}
	return crossmcp.StoreStats{Documents: snap.Len(), RefreshedAt: snap.RefreshedAt}
}

// Stale reports whether the next access will refresh. An empty snapshot
// is always stale.
func (s *Store) Stale() bool {
	snap := s.snapshot.Load()
	if snap.Len() == 0 {
		return true
	}
	return s.now().Sub(snap.RefreshedAt) >= s.Expiry
}

// RefreshIfStale refreshes the snapshot when it is stale. Concurrent
// callers share a single refresh pass. The pass outlives any one caller:
// a caller whose ctx ends stops waiting, the others keep waiting.
func (s *Store) RefreshIfStale(ctx context.Context) error {
	if !s.Stale() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ch := s.group.DoChan("refresh", func() (any, error) {
		// A pass that finished while we waited to enter is enough.
		if !s.Stale() {
			return nil, nil
		}
		return nil, s.Refresh(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh fetches and normalizes every registry source and swaps in the
// resulting snapshot. A failing source is logged and left out; only
// cancellation of ctx fails the pass, in which case the previous
// snapshot is kept.
func (s *Store) Refresh(ctx context.Context) error {
	sources := s.Registry.ListSources()
	refreshID := uuid.NewString()
	logger := s.logger().With("refresh_id", refreshID)
	begin := time.Now()

	docs := make([]*crossmcp.Document, len(sources))
	if s.Concurrency > 1 {
		g := new(errgroup.Group)
		g.SetLimit(s.Concurrency)
		for i, src := range sources {
			g.Go(func() error {
				docs[i] = s.load(ctx, src, logger)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, src := range sources {
			if ctx.Err() != nil {
				break
			}
			docs[i] = s.load(ctx, src, logger)
		}
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("refresh canceled", "err", err)
		return err
	}

	prev := s.snapshot.Load()
	next := &Snapshot{
		docs:        make(map[string]*crossmcp.Document, len(docs)),
		order:       make([]string, 0, len(docs)),
		RefreshedAt: s.now(),
	}
	var failed, changed int
	for _, doc := range docs {
		if doc == nil {
			failed++
			continue
		}
		if _, ok := next.docs[doc.ID]; !ok {
			next.order = append(next.order, doc.ID)
		}
		next.docs[doc.ID] = doc
		if prev != nil {
			if old, ok := prev.docs[doc.ID]; !ok || old.ContentHash != doc.ContentHash {
				changed++
			}
		}
	}
	s.snapshot.Store(next)

	logger.Info("refreshed documents",
		"sources", len(sources),
		"documents", next.Len(),
		"failed", failed,
		"changed", changed,
		"duration", time.Since(begin),
	)
	return nil
}

// load fetches and normalizes one source. Failures are logged and
// reported as a nil document.
func (s *Store) load(ctx context.Context, src *crossmcp.Source, logger *slog.Logger) *crossmcp.Document {
	if s.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.FetchTimeout)
		defer cancel()
	}

	raw, err := FetchWithRetry(ctx, src, s.fetch, s.RetryDelays, logger)
	if err != nil {
		logger.Warn("source fetch failed", "path", src.Path, "repo", src.Repo.String(), "err", err)
		return nil
	}
	doc, err := s.Normalizer.Normalize(raw)
	if err != nil {
		logger.Warn("source normalize failed", "path", src.Path, "err", err)
		return nil
	}
	return doc
}

func (s *Store) fetch(ctx context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
	if s.RateLimiter != nil {
		if u, err := url.Parse(s.Registry.URL(src)); err == nil {
			if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}
	return s.Fetcher.FetchSource(ctx, src)
}

// FindDocumentByID refreshes if stale and returns the document with id.
// Returns ENOTFOUND if no such document exists.
func (s *Store) FindDocumentByID(ctx context.Context, id string) (*crossmcp.Document, error) {
	if err := s.RefreshIfStale(ctx); err != nil {
		return nil, err
	}
	snap := s.snapshot.Load()
	if snap != nil {
		if doc, ok := snap.docs[id]; ok {
			return doc, nil
		}
	}
	return nil, crossmcp.Errorf(crossmcp.ENOTFOUND, "Document not found: %s", id)
}

// FindDocuments refreshes if stale and returns the documents passing
// filter in registry order.
func (s *Store) FindDocuments(ctx context.Context, filter crossmcp.DocumentFilter) ([]*crossmcp.Document, error) {
	if err := s.RefreshIfStale(ctx); err != nil {
		return nil, err
	}
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, nil
	}
	out := make([]*crossmcp.Document, 0, len(snap.order))
	for _, id := range snap.order {
		if doc := snap.docs[id]; filter.Match(doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Store) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
