package search_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/mock"
	"github.com/jeeu-dev/cross-mcp/search"
	"github.com/jeeu-dev/cross-mcp/smetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticDocs(docs ...*crossmcp.Document) *mock.DocumentService {
	return &mock.DocumentService{
		FindDocumentsFn: func(context.Context, crossmcp.DocumentFilter) ([]*crossmcp.Document, error) {
			return docs, nil
		},
	}
}

func exampleDocs() []*crossmcp.Document {
	return []*crossmcp.Document{
		{ID: "a", Title: "Token Transfer", Content: "transfer tokens between addresses", Category: crossmcp.CategorySDKJS},
		{ID: "b", Title: "Fee Delegation", Content: "delegate transaction fees", Category: crossmcp.CategoryChain},
	}
}

func ids(results []*crossmcp.ScoredResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Document.ID)
	}
	return out
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	t.Run("ranks the transfer document", func(t *testing.T) {
		t.Parallel()

		idx := search.NewIndex(staticDocs(exampleDocs()...), smetrics.NewRanker())

		results, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "transfer", Category: crossmcp.CategoryAll, Limit: 10})

		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "a", results[0].Document.ID)
		assert.NotContains(t, ids(results), "b")
	})

	t.Run("category filter excludes non-matching documents", func(t *testing.T) {
		t.Parallel()

		idx := search.NewIndex(staticDocs(exampleDocs()...), smetrics.NewRanker())

		results, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "transfer", Category: crossmcp.CategoryChain, Limit: 10})

		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("category filter preserves relative order", func(t *testing.T) {
		t.Parallel()

		docs := []*crossmcp.Document{
			{ID: "c1", Title: "Validator", Content: "validator", Category: crossmcp.CategoryChain},
			{ID: "s1", Title: "Validator SDK", Content: "validator helpers for the sdk", Category: crossmcp.CategorySDKJS},
			{ID: "c2", Title: "Node", Content: "run a node and become a validator on the network", Category: crossmcp.CategoryChain},
		}
		idx := search.NewIndex(staticDocs(docs...), smetrics.NewRanker())

		all, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "validator"})
		require.NoError(t, err)
		chain, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "validator", Category: crossmcp.CategoryChain})
		require.NoError(t, err)

		var want []string
		for _, id := range ids(all) {
			if strings.HasPrefix(id, "c") {
				want = append(want, id)
			}
		}
		assert.Equal(t, want, ids(chain))
		assert.Equal(t, []string{"c1", "c2"}, ids(chain))
	})

	t.Run("clamps limit to the maximum", func(t *testing.T) {
		t.Parallel()

		docs := make([]*crossmcp.Document, 0, 80)
		for i := range 80 {
			docs = append(docs, &crossmcp.Document{
				ID:       fmt.Sprintf("doc-%d", i),
				Title:    "Wallet guide",
				Content:  "connect the wallet",
				Category: crossmcp.CategoryCrossX,
			})
		}
		idx := search.NewIndex(staticDocs(docs...), smetrics.NewRanker())

		results, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "wallet", Limit: 1000})
		require.NoError(t, err)
		assert.Len(t, results, crossmcp.MaxSearchLimit)

		results, err = idx.Search(context.Background(), crossmcp.SearchOptions{Query: "wallet"})
		require.NoError(t, err)
		assert.Len(t, results, crossmcp.DefaultSearchLimit)
	})

	t.Run("highlights are bounded substrings of content", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("Bridge tokens to CROSS with the bridge contract. ", 10)
		idx := search.NewIndex(staticDocs(&crossmcp.Document{ID: "bridge", Title: "Bridge", Content: content, Category: crossmcp.CategoryGeneral}), smetrics.NewRanker())

		results, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "bridge"})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.NotEmpty(t, results[0].Highlights)
		assert.LessOrEqual(t, len(results[0].Highlights), search.MaxHighlights)
		for _, h := range results[0].Highlights {
			assert.Contains(t, content, h)
		}
	})

	t.Run("rejects empty query", func(t *testing.T) {
		t.Parallel()

		idx := search.NewIndex(staticDocs(exampleDocs()...), smetrics.NewRanker())

		_, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "  "})

		assert.Equal(t, crossmcp.EINVALID, crossmcp.ErrorCode(err))
	})

	t.Run("empty store is unavailable", func(t *testing.T) {
		t.Parallel()

		idx := search.NewIndex(staticDocs(), smetrics.NewRanker())

		_, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "transfer"})

		assert.Equal(t, crossmcp.EUNAVAILABLE, crossmcp.ErrorCode(err))
	})

	t.Run("store failure is unavailable", func(t *testing.T) {
		t.Parallel()

		idx := search.NewIndex(&mock.DocumentService{
			FindDocumentsFn: func(context.Context, crossmcp.DocumentFilter) ([]*crossmcp.Document, error) {
				return nil, errors.New("boom")
			},
		}, smetrics.NewRanker())

		_, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "transfer"})

		assert.Equal(t, crossmcp.EUNAVAILABLE, crossmcp.ErrorCode(err))
	})
}

func TestIndex_RebuildIfStale(t *testing.T) {
	t.Parallel()

	t.Run("rebuilds only after expiry", func(t *testing.T) {
		t.Parallel()

		var builds atomic.Int32
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		idx := search.NewIndex(staticDocs(exampleDocs()...), &mock.Ranker{
			BuildFn: func([]*crossmcp.Document, []crossmcp.SearchKey) (crossmcp.Matcher, error) {
				builds.Add(1)
				return &mock.Matcher{MatchFn: func(string) []*crossmcp.Match { return nil }}, nil
			},
		})
		idx.Now = func() time.Time { return now }

		require.NoError(t, idx.RebuildIfStale(context.Background()))
		require.NoError(t, idx.RebuildIfStale(context.Background()))
		assert.Equal(t, int32(1), builds.Load())
		assert.Equal(t, now, idx.BuiltAt())

		now = now.Add(search.DefaultExpiry)
		require.NoError(t, idx.RebuildIfStale(context.Background()))
		assert.Equal(t, int32(2), builds.Load())
	})

	t.Run("keeps serving the previous build when a rebuild fails", func(t *testing.T) {
		t.Parallel()

		var fail atomic.Bool
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		idx := search.NewIndex(staticDocs(exampleDocs()...), &mock.Ranker{
			BuildFn: func(docs []*crossmcp.Document, _ []crossmcp.SearchKey) (crossmcp.Matcher, error) {
				if fail.Load() {
					return nil, errors.New("ranker broke")
				}
				return &mock.Matcher{MatchFn: func(string) []*crossmcp.Match {
					return []*crossmcp.Match{{Document: docs[0]}}
				}}, nil
			},
		})
		idx.Now = func() time.Time { return now }
		require.NoError(t, idx.RebuildIfStale(context.Background()))

		fail.Store(true)
		err := idx.Rebuild(context.Background())
		assert.Equal(t, crossmcp.EUNAVAILABLE, crossmcp.ErrorCode(err))

		results, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "anything"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(results))
	})

	t.Run("a caller giving up does not cancel the shared rebuild", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		docs := &mock.DocumentService{
			FindDocumentsFn: func(ctx context.Context, _ crossmcp.DocumentFilter) ([]*crossmcp.Document, error) {
				close(started)
				select {
				case <-release:
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				return exampleDocs(), nil
			},
		}
		idx := search.NewIndex(docs, smetrics.NewRanker())

		ctxA, cancelA := context.WithCancel(context.Background())
		errA := make(chan error, 1)
		go func() { errA <- idx.RebuildIfStale(ctxA) }()
		<-started

		type result struct {
			results []*crossmcp.ScoredResult
			err     error
		}
		resB := make(chan result, 1)
		go func() {
			results, err := idx.Search(context.Background(), crossmcp.SearchOptions{Query: "transfer"})
			resB <- result{results, err}
		}()

		time.Sleep(20 * time.Millisecond)
		cancelA()
		require.ErrorIs(t, <-errA, context.Canceled)

		close(release)
		got := <-resB
		require.NoError(t, got.err)
		require.NotEmpty(t, got.results)
		assert.Equal(t, "a", got.results[0].Document.ID)
	})
}
