package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// ExtractLinks returns the same-host page links of html in document
// order, resolved against baseURL with fragments removed. Links outside
// the base URL path and links back to the base page are skipped. Used
// to discover sources on sites without a sitemap.
func ExtractLinks(html, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "invalid base URL: %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "failed to parse HTML: %v", err)
	}

	self := *base
	self.Fragment = ""
	basePath := strings.TrimSuffix(base.Path, "/")

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		u := base.ResolveReference(ref)
		u.Fragment = ""
		if u.Host != base.Host || !strings.HasPrefix(u.Path, basePath) {
			return
		}
		link := u.String()
		if link == self.String() || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links, nil
}
