// Package goquery extracts documentation content and links from HTML with
// CSS selectors.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Ensure Extractor implements crossmcp.Extractor at compile time.
var _ crossmcp.Extractor = (*Extractor)(nil)

// DefaultBoilerplate is removed before the content region is chosen.
var DefaultBoilerplate = []string{
	"nav", "header", "footer", "aside",
	"script", "style", "noscript", "template",
	".sidebar", ".toc", ".table-of-contents",
	`[role="navigation"]`, `[aria-hidden="true"]`,
}

// DefaultContent lists primary content selectors, most specific first.
var DefaultContent = []string{
	"main article",
	"article",
	"main",
	`[role="main"]`,
	".markdown",
	".theme-doc-markdown",
	".content",
	"#content",
}

// Extractor selects the primary content region of a documentation page.
type Extractor struct {
	Boilerplate []string
	Content     []string
}

// NewExtractor returns an Extractor with the default selectors.
func NewExtractor() *Extractor {
	return &Extractor{
		Boilerplate: DefaultBoilerplate,
		Content:     DefaultContent,
	}
}

// Extract strips boilerplate and returns the first content region with
// text, or the whole body when none matches. Relative links and images
// are resolved against pageURL.
func (e *Extractor) Extract(rawHTML, pageURL string) (*crossmcp.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "failed to parse HTML: %v", err)
	}

	title := extractTitle(doc)

	for _, sel := range e.Boilerplate {
		doc.Find(sel).Remove()
	}

	region := doc.Find("body")
	for _, sel := range e.Content {
		if s := doc.Find(sel).First(); s.Length() > 0 && strings.TrimSpace(s.Text()) != "" {
			region = s
			break
		}
	}

	if base, err := url.Parse(pageURL); err == nil && base.IsAbs() {
		resolveRefs(region, base)
	}

	contentHTML, err := region.Html()
	if err != nil {
		return nil, err
	}

	return &crossmcp.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(contentHTML),
	}, nil
}

// extractTitle prefers the page heading over document metadata.
func extractTitle(doc *goquery.Document) string {
	for _, sel := range []string{"main h1", "article h1", "h1"} {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	og, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	return strings.TrimSpace(og)
}

func resolveRefs(region *goquery.Selection, base *url.URL) {
	for _, attr := range []string{"href", "src"} {
		region.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			v, _ := s.Attr(attr)
			if v == "" || strings.HasPrefix(v, "#") || isNonHTTPLink(v) {
				return
			}
			ref, err := url.Parse(v)
			if err != nil {
				return
			}
			s.SetAttr(attr, base.ResolveReference(ref).String())
		})
	}
}

// isNonHTTPLink reports hrefs that never point at a page.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
