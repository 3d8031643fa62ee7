package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"regexp"
	"testing"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/mock"
	crossslog "github.com/jeeu-dev/cross-mcp/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("logs sources and categories", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *crossmcp.URLFilter) ([]string, error) {
				return []string{
					"https://docs.crosstoken.io/chain/overview",
					"https://docs.crosstoken.io/chain/overview#fees",
					"https://docs.crosstoken.io/sdk-js/transactions",
				}, nil
			},
		}

		svc := crossslog.NewLoggingSitemapService(inner, logger)
		urls, err := svc.DiscoverURLs(context.Background(), "https://docs.crosstoken.io", nil)

		require.NoError(t, err)
		assert.Len(t, urls, 3)
		output := buf.String()
		assert.Contains(t, output, `msg="source discovery"`)
		assert.Contains(t, output, "base_url=https://docs.crosstoken.io")
		assert.Contains(t, output, "urls=3")
		assert.Contains(t, output, "sources=2")
		assert.Contains(t, output, "categories.chain=1")
		assert.Contains(t, output, "categories.sdk-js=1")
		assert.NotContains(t, output, "include_patterns")
	})

	t.Run("logs filter patterns and error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(context.Context, string, *crossmcp.URLFilter) ([]string, error) {
				return nil, errors.New("connection failed")
			},
		}
		filter := &crossmcp.URLFilter{Include: []*regexp.Regexp{regexp.MustCompile("chain")}}

		svc := crossslog.NewLoggingSitemapService(inner, logger)
		_, err := svc.DiscoverURLs(context.Background(), "https://docs.crosstoken.io", filter)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, `msg="source discovery failed"`)
		assert.Contains(t, output, "include_patterns=1")
		assert.Contains(t, output, "exclude_patterns=0")
		assert.Contains(t, output, `err="connection failed"`)
		assert.NotContains(t, output, "sources=")
	})
}
