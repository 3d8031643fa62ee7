package crossmcp

import (
	"context"
	"strings"
)

// PreviewLength is the number of content characters kept when repository
// documents are listed without their code.
const PreviewLength = 500

// GitHubResourceType narrows repository documents.
type GitHubResourceType string

// GitHub resource types.
const (
	GitHubSDK      GitHubResourceType = "sdk"
	GitHubExamples GitHubResourceType = "examples"
	GitHubAll      GitHubResourceType = "all"
)

// ParseGitHubResourceType validates a resource type. Empty means all.
func ParseGitHubResourceType(s string) (GitHubResourceType, error) {
	switch t := GitHubResourceType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return GitHubAll, nil
	case GitHubSDK, GitHubExamples, GitHubAll:
		return t, nil
	}
	return "", Errorf(EINVALID, "unknown github resource type %q", s)
}

// GitHubResourcesOptions configures GitHubResources.
type GitHubResourcesOptions struct {
	Type        GitHubResourceType `json:"type"`
	IncludeCode bool               `json:"includeCode"`
}

// QueryService is the set of operations exposed to the tool layer.
type QueryService interface {
	// SearchDocuments ranks documents against query. An empty category
	// searches everything; limit is clamped to MaxSearchLimit.
	SearchDocuments(ctx context.Context, query, category string, limit int) ([]*ScoredResult, error)

	// DocumentByID returns a document. Returns ENOTFOUND if it does not exist.
	DocumentByID(ctx context.Context, id string) (*Document, error)

	// TestnetInfo returns static testnet instructions.
	TestnetInfo(ctx context.Context, kind string) ([]*TestnetInfo, error)

	// GitHubResources lists repository documents.
	GitHubResources(ctx context.Context, opts GitHubResourcesOptions) ([]*Document, error)

	// Categories returns the accepted search category filters.
	Categories() []Category
}

// Truncate shortens s to n runes, appending "..." when anything was cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "..."
		}
		i++
	}
	return s
}
