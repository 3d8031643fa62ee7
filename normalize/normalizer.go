// Package normalize turns fetched source payloads into documents.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Ensure Normalizer implements crossmcp.Normalizer at compile time.
var _ crossmcp.Normalizer = (*Normalizer)(nil)

// Normalizer extracts and converts raw content by format. HTML pages go
// through the Extractor and Converter, Markdown files through the
// Renderer and Converter, and code is kept verbatim.
type Normalizer struct {
	Extractor crossmcp.Extractor
	Converter crossmcp.Converter
	Renderer  crossmcp.MarkdownRenderer
	BaseURL   string
	Now       func() time.Time
}

// Normalize builds a document from raw. The identity fields come from
// the source descriptor; only title and content depend on the payload.
// Returns EINVALID when no content remains.
func (n *Normalizer) Normalize(raw *crossmcp.RawContent) (*crossmcp.Document, error) {
	if raw == nil || raw.Source == nil {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "raw content requires a source")
	}
	src := raw.Source
	pageURL := raw.URL
	if pageURL == "" {
		pageURL = crossmcp.SourceURL(n.BaseURL, src)
	}

	var title, content string
	var err error
	switch raw.Format {
	case crossmcp.FormatHTML, "":
		title, content, err = n.html(raw.Body, pageURL)
	case crossmcp.FormatMarkdown:
		title, content, err = n.markdown(raw.Body)
	case crossmcp.FormatCode:
		content = strings.TrimSpace(strings.ReplaceAll(raw.Body, "\r\n", "\n"))
	default:
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "unknown content format %q", raw.Format)
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "no content extracted from %s", pageURL)
	}
	if title = strings.TrimSpace(title); title == "" {
		title = crossmcp.DeriveTitle(src)
	}

	doc := &crossmcp.Document{
		ID:          crossmcp.DeriveID(src),
		Title:       title,
		Content:     content,
		URL:         pageURL,
		Category:    crossmcp.DeriveCategory(src),
		Kind:        crossmcp.DeriveKind(src),
		ContentHash: Hash(content),
		FetchedAt:   n.now(),
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (n *Normalizer) html(body, pageURL string) (string, string, error) {
	result, err := n.Extractor.Extract(body, pageURL)
	if err != nil {
		return "", "", err
	}
	contentHTML := result.ContentHTML
	if strings.TrimSpace(contentHTML) == "" {
		// Nothing identified as primary content; use the whole page.
		contentHTML = body
	}
	content, err := n.Converter.Convert(contentHTML)
	if err != nil {
		return "", "", err
	}
	return result.Title, content, nil
}

func (n *Normalizer) markdown(body string) (string, string, error) {
	html, title, err := n.Renderer.Render(body)
	if err != nil {
		return "", "", err
	}
	content, err := n.Converter.Convert(html)
	if err != nil {
		return "", "", err
	}
	return title, content, nil
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

// Hash returns the hex xxhash64 digest of content.
func Hash(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}
