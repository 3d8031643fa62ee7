package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/mock"
	crossslog "github.com/jeeu-dev/cross-mcp/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingQueryService(t *testing.T) {
	t.Parallel()

	inner := &mock.QueryService{
		SearchDocumentsFn: func(context.Context, string, string, int) ([]*crossmcp.ScoredResult, error) {
			return []*crossmcp.ScoredResult{{}, {}}, nil
		},
		DocumentByIDFn: func(_ context.Context, id string) (*crossmcp.Document, error) {
			return nil, crossmcp.Errorf(crossmcp.ENOTFOUND, "Document not found: %s", id)
		},
		TestnetInfoFn: func(context.Context, string) ([]*crossmcp.TestnetInfo, error) {
			return nil, errors.New("boom")
		},
		GitHubResourcesFn: func(context.Context, crossmcp.GitHubResourcesOptions) ([]*crossmcp.Document, error) {
			return []*crossmcp.Document{{}}, nil
		},
		CategoriesFn: func() []crossmcp.Category {
			return []crossmcp.Category{crossmcp.CategoryChain}
		},
	}

	t.Run("search", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := crossslog.NewLoggingQueryService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		results, err := svc.SearchDocuments(context.Background(), "bridge", "chain", 5)

		require.NoError(t, err)
		assert.Len(t, results, 2)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, `msg="search documents"`)
		assert.Contains(t, output, "query=bridge")
		assert.Contains(t, output, "results=2")
	})

	t.Run("missing documents are not errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := crossslog.NewLoggingQueryService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := svc.DocumentByID(context.Background(), "nope")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "found=false")
	})

	t.Run("unexpected failures log at error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := crossslog.NewLoggingQueryService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := svc.TestnetInfo(context.Background(), "faucet")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "err=boom")
	})

	t.Run("github resources and categories", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := crossslog.NewLoggingQueryService(inner, slog.New(slog.NewTextHandler(&buf, nil)))

		docs, err := svc.GitHubResources(context.Background(), crossmcp.GitHubResourcesOptions{Type: crossmcp.GitHubSDK})

		require.NoError(t, err)
		assert.Len(t, docs, 1)
		assert.Contains(t, buf.String(), "type=sdk")
		assert.Contains(t, buf.String(), "include_code=false")
		assert.Equal(t, []crossmcp.Category{crossmcp.CategoryChain}, svc.Categories())
	})
}
