package crossmcp_test

import (
	"testing"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	c, err := crossmcp.ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, crossmcp.CategoryAll, c)

	c, err = crossmcp.ParseCategory(" SDK-JS ")
	require.NoError(t, err)
	assert.Equal(t, crossmcp.CategorySDKJS, c)

	_, err = crossmcp.ParseCategory("cooking")
	assert.Equal(t, crossmcp.EINVALID, crossmcp.ErrorCode(err))
}

func TestDocumentFilter_Match(t *testing.T) {
	t.Parallel()

	doc := &crossmcp.Document{ID: "github/to-nexus/SDK-js/README.md", Category: crossmcp.CategoryGitHub, Kind: crossmcp.KindRepository}
	repo := crossmcp.KindRepository
	example := crossmcp.KindExample
	all := crossmcp.CategoryAll
	chain := crossmcp.CategoryChain

	assert.True(t, crossmcp.DocumentFilter{}.Match(doc))
	assert.True(t, crossmcp.DocumentFilter{Kind: &repo}.Match(doc))
	assert.False(t, crossmcp.DocumentFilter{Kind: &example}.Match(doc))
	assert.True(t, crossmcp.DocumentFilter{Category: &all}.Match(doc))
	assert.False(t, crossmcp.DocumentFilter{Category: &chain}.Match(doc))
	assert.True(t, crossmcp.DocumentFilter{IDContains: "sdk"}.Match(doc))
	assert.False(t, crossmcp.DocumentFilter{IDContains: "example"}.Match(doc))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", crossmcp.Truncate("short", 10))
	assert.Equal(t, "abc...", crossmcp.Truncate("abcdef", 3))
	assert.Equal(t, "héé...", crossmcp.Truncate("hééllo", 3))
	assert.Equal(t, "", crossmcp.Truncate("abc", 0))
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, crossmcp.DefaultSearchLimit, crossmcp.ClampLimit(0))
	assert.Equal(t, crossmcp.DefaultSearchLimit, crossmcp.ClampLimit(-4))
	assert.Equal(t, 7, crossmcp.ClampLimit(7))
	assert.Equal(t, crossmcp.MaxSearchLimit, crossmcp.ClampLimit(1000))
}
