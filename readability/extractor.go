// Package readability extracts page content with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Ensure Extractor implements crossmcp.Extractor at compile time.
var _ crossmcp.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable article of rawHTML. Relative links are
// made absolute against pageURL when it parses.
func (e *Extractor) Extract(rawHTML, pageURL string) (*crossmcp.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "empty HTML input")
	}

	var u *url.URL
	if parsed, err := url.Parse(pageURL); err == nil && parsed.IsAbs() {
		u = parsed
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), u)
	if err != nil {
		return nil, err
	}

	return &crossmcp.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
