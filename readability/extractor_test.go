package readability_test

import (
	"testing"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guide = `<!DOCTYPE html>
<html>
<head><title>Wallet Connection</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h2>Connecting a wallet</h2>
<p>Initialize the SDK with your project identifier, then request an account from the CROSSx wallet before sending any transaction.</p>
<p>See the <a href="/sdk-js/reference">API reference</a> for every option.</p>
<pre><code>const sdk = await initCrossSdk({ projectId })</code></pre>
</article>
<footer><p>Footer copyright text 2025</p></footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract("", "")

	require.Error(t, err)
	assert.Equal(t, crossmcp.EINVALID, crossmcp.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(guide, "")

	require.NoError(t, err)
	assert.Equal(t, "Wallet Connection", result.Title)
}

func TestExtractor_KeepsArticleAndDropsBoilerplate(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(guide, "")

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "request an account from the CROSSx wallet")
	assert.Contains(t, result.ContentHTML, "initCrossSdk")
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.ContentHTML, "Footer copyright text")
}

func TestExtractor_ResolvesLinksAgainstPageURL(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(guide, "https://docs.example/sdk-js/wallet")

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "https://docs.example/sdk-js/reference")
}
