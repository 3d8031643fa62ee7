package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/mock"
	"github.com/jeeu-dev/cross-mcp/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func pages(paths ...string) *crossmcp.Registry {
	sources := make([]*crossmcp.Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, &crossmcp.Source{Kind: crossmcp.SourcePage, Path: p})
	}
	return crossmcp.NewRegistry("https://docs.example", sources)
}

// passthrough builds a document from the source path and body.
func passthrough() *mock.Normalizer {
	return &mock.Normalizer{
		NormalizeFn: func(raw *crossmcp.RawContent) (*crossmcp.Document, error) {
			return &crossmcp.Document{
				ID:          crossmcp.DeriveID(raw.Source),
				Title:       crossmcp.DeriveTitle(raw.Source),
				Content:     raw.Body,
				URL:         raw.URL,
				Category:    crossmcp.DeriveCategory(raw.Source),
				Kind:        crossmcp.DeriveKind(raw.Source),
				ContentHash: raw.Body,
			}, nil
		},
	}
}

// countingFetcher returns "body of <path>" and counts calls.
func countingFetcher(calls *atomic.Int32) *mock.SourceFetcher {
	return &mock.SourceFetcher{
		FetchSourceFn: func(_ context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
			calls.Add(1)
			return &crossmcp.RawContent{Source: src, Body: "body of " + src.Path, Format: crossmcp.FormatHTML}, nil
		},
	}
}

func newStore(reg *crossmcp.Registry, f crossmcp.SourceFetcher, c *clock) *store.Store {
	s := store.New(reg, f, passthrough())
	s.Now = c.Now
	return s
}

func TestStore_RefreshIfStale(t *testing.T) {
	t.Parallel()

	t.Run("fetches every source once within expiry", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		c := newClock()
		s := newStore(pages("/a", "/b"), countingFetcher(&calls), c)

		require.NoError(t, s.RefreshIfStale(context.Background()))
		c.Advance(store.DefaultExpiry - time.Second)
		require.NoError(t, s.RefreshIfStale(context.Background()))

		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, 2, s.Stats().Documents)
	})

	t.Run("refetches after expiry", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		c := newClock()
		s := newStore(pages("/a", "/b"), countingFetcher(&calls), c)

		require.NoError(t, s.RefreshIfStale(context.Background()))
		c.Advance(store.DefaultExpiry)
		require.NoError(t, s.RefreshIfStale(context.Background()))

		assert.Equal(t, int32(4), calls.Load())
		assert.Equal(t, c.Now(), s.Stats().RefreshedAt)
	})

	t.Run("empty snapshot is always stale", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.SourceFetcher{
			FetchSourceFn: func(context.Context, *crossmcp.Source) (*crossmcp.RawContent, error) {
				calls.Add(1)
				return nil, errors.New("offline")
			},
		}
		s := newStore(pages("/a"), fetcher, newClock())

		require.NoError(t, s.RefreshIfStale(context.Background()))
		require.NoError(t, s.RefreshIfStale(context.Background()))

		assert.Equal(t, int32(2), calls.Load())
		assert.True(t, s.Stale())
	})

	t.Run("concurrent stale callers share one pass", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		fetcher := &mock.SourceFetcher{
			FetchSourceFn: func(_ context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
				calls.Add(1)
				<-release
				return &crossmcp.RawContent{Source: src, Body: "x"}, nil
			},
		}
		s := newStore(pages("/a"), fetcher, newClock())

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.RefreshIfStale(context.Background()))
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("returns context error and keeps previous snapshot", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		c := newClock()
		s := newStore(pages("/a"), countingFetcher(&calls), c)
		require.NoError(t, s.RefreshIfStale(context.Background()))
		before := s.Snapshot()

		c.Advance(store.DefaultExpiry)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := s.RefreshIfStale(ctx)

		require.ErrorIs(t, err, context.Canceled)
		assert.Same(t, before, s.Snapshot())
	})

	t.Run("a caller giving up does not cancel the shared pass", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		fetcher := &mock.SourceFetcher{
			FetchSourceFn: func(ctx context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
				close(started)
				select {
				case <-release:
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				return &crossmcp.RawContent{Source: src, Body: "x"}, nil
			},
		}
		s := newStore(pages("/a"), fetcher, newClock())

		ctxA, cancelA := context.WithCancel(context.Background())
		errA := make(chan error, 1)
		go func() { errA <- s.RefreshIfStale(ctxA) }()
		<-started

		type result struct {
			doc *crossmcp.Document
			err error
		}
		resB := make(chan result, 1)
		go func() {
			doc, err := s.FindDocumentByID(context.Background(), "a")
			resB <- result{doc, err}
		}()

		time.Sleep(20 * time.Millisecond)
		cancelA()
		require.ErrorIs(t, <-errA, context.Canceled)

		close(release)
		got := <-resB
		require.NoError(t, got.err)
		assert.Equal(t, "a", got.doc.ID)
	})
}

func TestStore_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("tolerates failing sources", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.SourceFetcher{
			FetchSourceFn: func(_ context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
				if src.Path == "/b" {
					return nil, errors.New("boom")
				}
				return &crossmcp.RawContent{Source: src, Body: "ok"}, nil
			},
		}
		s := newStore(pages("/a", "/b", "/c"), fetcher, newClock())

		docs, err := s.FindDocuments(context.Background(), crossmcp.DocumentFilter{})

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].ID)
		assert.Equal(t, "c", docs[1].ID)
	})

	t.Run("drops documents that fail normalization", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		s := store.New(pages("/a", "/b"), countingFetcher(&calls), &mock.Normalizer{
			NormalizeFn: func(raw *crossmcp.RawContent) (*crossmcp.Document, error) {
				if raw.Source.Path == "/a" {
					return nil, crossmcp.Errorf(crossmcp.EINVALID, "empty")
				}
				return &crossmcp.Document{ID: crossmcp.DeriveID(raw.Source), Content: raw.Body}, nil
			},
		})

		docs, err := s.FindDocuments(context.Background(), crossmcp.DocumentFilter{})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "b", docs[0].ID)
	})

	t.Run("a source failing on a later pass is removed", func(t *testing.T) {
		t.Parallel()

		var fail atomic.Bool
		fetcher := &mock.SourceFetcher{
			FetchSourceFn: func(_ context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
				if fail.Load() && src.Path == "/a" {
					return nil, errors.New("gone")
				}
				return &crossmcp.RawContent{Source: src, Body: "ok"}, nil
			},
		}
		s := newStore(pages("/a", "/b"), fetcher, newClock())
		require.NoError(t, s.Refresh(context.Background()))

		fail.Store(true)
		require.NoError(t, s.Refresh(context.Background()))

		_, err := s.FindDocumentByID(context.Background(), "a")
		assert.Equal(t, crossmcp.ENOTFOUND, crossmcp.ErrorCode(err))
	})

	t.Run("later source with same id replaces earlier", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		s := newStore(pages("/a", "/b", "/a.html"), countingFetcher(&calls), newClock())

		docs, err := s.FindDocuments(context.Background(), crossmcp.DocumentFilter{})

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].ID)
		assert.Equal(t, "body of /a.html", docs[0].Content)
	})

	t.Run("parallel fetch keeps registry order", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.SourceFetcher{
			FetchSourceFn: func(_ context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
				if src.Path == "/a" {
					time.Sleep(20 * time.Millisecond)
				}
				return &crossmcp.RawContent{Source: src, Body: "ok"}, nil
			},
		}
		s := newStore(pages("/a", "/b", "/c", "/d"), fetcher, newClock())
		s.Concurrency = 4

		docs, err := s.FindDocuments(context.Background(), crossmcp.DocumentFilter{})

		require.NoError(t, err)
		ids := make([]string, 0, len(docs))
		for _, d := range docs {
			ids = append(ids, d.ID)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
	})

	t.Run("bounds each fetch with the timeout", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.SourceFetcher{
			FetchSourceFn: func(ctx context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
				if src.Path == "/slow" {
					<-ctx.Done()
					return nil, ctx.Err()
				}
				return &crossmcp.RawContent{Source: src, Body: "ok"}, nil
			},
		}
		s := newStore(pages("/slow", "/fast"), fetcher, newClock())
		s.FetchTimeout = 20 * time.Millisecond

		docs, err := s.FindDocuments(context.Background(), crossmcp.DocumentFilter{})

		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "fast", docs[0].ID)
	})

	t.Run("waits on the rate limiter per host", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		var mu sync.Mutex
		var calls atomic.Int32
		s := newStore(pages("/a", "https://other.example/b"), countingFetcher(&calls), newClock())
		s.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				hosts = append(hosts, domain)
				return nil
			},
		}

		require.NoError(t, s.Refresh(context.Background()))

		assert.Equal(t, []string{"docs.example", "other.example"}, hosts)
	})

	t.Run("retries failing sources with configured delays", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := &mock.SourceFetcher{
			FetchSourceFn: func(_ context.Context, src *crossmcp.Source) (*crossmcp.RawContent, error) {
				if calls.Add(1) < 3 {
					return nil, errors.New("transient")
				}
				return &crossmcp.RawContent{Source: src, Body: "ok"}, nil
			},
		}
		s := newStore(pages("/a"), fetcher, newClock())
		s.RetryDelays = []time.Duration{time.Millisecond, time.Millisecond}

		require.NoError(t, s.Refresh(context.Background()))

		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, 1, s.Stats().Documents)
	})
}

func TestStore_FindDocumentByID(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	s := newStore(pages("/sdk-js/setup"), countingFetcher(&calls), newClock())

	doc, err := s.FindDocumentByID(context.Background(), "sdk-js/setup")
	require.NoError(t, err)
	assert.Equal(t, crossmcp.CategorySDKJS, doc.Category)

	_, err = s.FindDocumentByID(context.Background(), "nonexistent")
	assert.Equal(t, crossmcp.ENOTFOUND, crossmcp.ErrorCode(err))
}

func TestStore_FindDocuments(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	s := newStore(pages("/chain/a", "/sdk-js/b", "/chain/example"), countingFetcher(&calls), newClock())
	chain := crossmcp.CategoryChain
	example := crossmcp.KindExample

	docs, err := s.FindDocuments(context.Background(), crossmcp.DocumentFilter{Category: &chain})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "chain/a", docs[0].ID)

	docs, err = s.FindDocuments(context.Background(), crossmcp.DocumentFilter{Kind: &example})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "chain/example", docs[0].ID)
}
