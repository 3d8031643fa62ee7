package crossmcp_test

import (
	"testing"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(p string) *crossmcp.Source {
	return &crossmcp.Source{Kind: crossmcp.SourcePage, Path: p}
}

func repoFile(owner, name, p string) *crossmcp.Source {
	return &crossmcp.Source{
		Kind: crossmcp.SourceRepositoryFile,
		Path: p,
		Repo: crossmcp.RepoRef{Owner: owner, Name: name},
	}
}

func TestDeriveID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  *crossmcp.Source
		want string
	}{
		{"trims slashes", page("/sdk-js/getting-started/"), "sdk-js/getting-started"},
		{"strips html suffix", page("/chain/overview.html"), "chain/overview"},
		{"strips markdown suffix", page("guides/intro.md"), "guides/intro"},
		{"drops query and fragment", page("/crossx/wallet?tab=1#top"), "crossx/wallet"},
		{"root is index", page("/"), "index"},
		{"absolute url keeps path", page("https://docs.example/smart-contract/erc20"), "smart-contract/erc20"},
		{"repository file", repoFile("to-nexus", "cross-sdk-js", "README.md"), "github/to-nexus/cross-sdk-js/README.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crossmcp.DeriveID(tt.src))
		})
	}

	t.Run("is idempotent for the same descriptor", func(t *testing.T) {
		t.Parallel()

		a := crossmcp.DeriveID(page("/sdk-unity/install"))
		b := crossmcp.DeriveID(page("/sdk-unity/install"))

		assert.Equal(t, a, b)
	})
}

func TestDeriveCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want crossmcp.Category
	}{
		{"/smart-contract/deploy", crossmcp.CategorySmartContract},
		{"/sdk-js/setup", crossmcp.CategorySDKJS},
		{"/sdk/js/setup", crossmcp.CategorySDKJS},
		{"/guides/javascript", crossmcp.CategorySDKJS},
		{"/sdk-unity/setup", crossmcp.CategorySDKUnity},
		{"/guides/unity-wallet", crossmcp.CategorySDKUnity},
		{"/crossx/overview", crossmcp.CategoryCrossX},
		{"/chain/consensus", crossmcp.CategoryChain},
		{"/network/endpoints", crossmcp.CategoryChain},
		{"/run-a-node", crossmcp.CategoryChain},
		{"/faq", crossmcp.CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crossmcp.DeriveCategory(page(tt.path)))
		})
	}

	t.Run("first rule wins", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, crossmcp.CategorySmartContract, crossmcp.DeriveCategory(page("/smart-contract/chain-id")))
	})

	t.Run("repository files are github", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, crossmcp.CategoryGitHub, crossmcp.DeriveCategory(repoFile("o", "sdk-unity", "README.md")))
	})
}

func TestDeriveKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, crossmcp.KindRepository, crossmcp.DeriveKind(repoFile("o", "r", "a.go")))
	assert.Equal(t, crossmcp.KindExample, crossmcp.DeriveKind(page("/sdk-js/examples/transfer")))
	assert.Equal(t, crossmcp.KindDocumentation, crossmcp.DeriveKind(page("/sdk-js/setup")))
}

func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	t.Run("title cases the last segment", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Getting Started", crossmcp.DeriveTitle(page("/sdk-js/getting-started.html")))
	})

	t.Run("prefers descriptor title", func(t *testing.T) {
		t.Parallel()
		src := page("/x")
		src.Title = "Custom"
		assert.Equal(t, "Custom", crossmcp.DeriveTitle(src))
	})

	t.Run("repository file uses repo and file name", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "cross-sdk-js: README.md", crossmcp.DeriveTitle(repoFile("to-nexus", "cross-sdk-js", "/README.md")))
	})
}

func TestSourceURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://docs.example/sdk-js/setup", crossmcp.SourceURL("https://docs.example/", page("sdk-js/setup")))
	assert.Equal(t, "https://other.example/a", crossmcp.SourceURL("https://docs.example", page("https://other.example/a")))

	src := repoFile("to-nexus", "sdk", "docs/a.md")
	assert.Equal(t, "https://github.com/to-nexus/sdk/blob/main/docs/a.md", crossmcp.SourceURL("", src))
	src.Repo.Ref = "v1.2.0"
	assert.Equal(t, "https://github.com/to-nexus/sdk/blob/v1.2.0/docs/a.md", crossmcp.SourceURL("", src))
}

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, page("/a").Validate())
	require.NoError(t, repoFile("o", "r", "a.md").Validate())

	err := repoFile("", "r", "a.md").Validate()
	assert.Equal(t, crossmcp.EINVALID, crossmcp.ErrorCode(err))

	err = repoFile("o", "r", "/").Validate()
	assert.Equal(t, crossmcp.EINVALID, crossmcp.ErrorCode(err))

	err = (&crossmcp.Source{Kind: "ftp", Path: "/a"}).Validate()
	assert.Equal(t, crossmcp.EINVALID, crossmcp.ErrorCode(err))
}

func TestRegistry_ListSources(t *testing.T) {
	t.Parallel()

	sources := []*crossmcp.Source{page("/b"), page("/a")}
	reg := crossmcp.NewRegistry("https://docs.example/", sources)

	got := reg.ListSources()
	require.Len(t, got, 2)
	assert.Equal(t, "/b", got[0].Path)
	assert.Equal(t, "https://docs.example", reg.BaseURL())
	assert.Equal(t, "https://docs.example/a", reg.URL(got[1]))

	got[0] = page("/changed")
	assert.Equal(t, "/b", reg.ListSources()[0].Path)
}

func TestSourcesFromURLs(t *testing.T) {
	t.Parallel()

	got := crossmcp.SourcesFromURLs("https://docs.example", []string{
		"https://docs.example/",
		"https://docs.example/sdk-js/setup",
		"https://docs.example/sdk-js/setup.html",
		"https://elsewhere.example/x",
	})

	require.Len(t, got, 3)
	assert.Equal(t, "/", got[0].Path)
	assert.Equal(t, "/sdk-js/setup", got[1].Path)
	assert.Equal(t, "https://elsewhere.example/x", got[2].Path)
}
