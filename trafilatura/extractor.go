// Package trafilatura extracts page content with go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements crossmcp.Extractor at compile time.
var _ crossmcp.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML. Links are resolved
// against pageURL when it parses.
func (e *Extractor) Extract(rawHTML, pageURL string) (*crossmcp.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeLinks:   true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		contentHTML = buf.String()
	}

	return &crossmcp.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}
