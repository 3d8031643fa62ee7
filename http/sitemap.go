package http

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Ensure SitemapService implements crossmcp.SitemapService.
var _ crossmcp.SitemapService = (*SitemapService)(nil)

// SitemapService discovers documentation pages from sitemaps.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a SitemapService. A nil client uses
// http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs returns the deduplicated page URLs of the site at
// baseURL in sitemap order. When baseURL has a path, only pages below
// it are kept. Returns an empty slice when the site has no sitemap.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *crossmcp.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "invalid base URL: %q", baseURL)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}

	sitemaps, err := s.locate(ctx, root)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seenURL := make(map[string]bool)
	seenMap := make(map[string]bool)
	for _, sm := range sitemaps {
		locs, err := s.read(ctx, sm, seenMap)
		if err != nil {
			return nil, err
		}
		for _, u := range locs {
			if seenURL[u] || !underPrefix(u, prefix) || !filter.Match(u) {
				continue
			}
			seenURL[u] = true
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// underPrefix reports whether the path of rawURL is prefix or lies below
// it on a segment boundary. An empty prefix matches everything.
func underPrefix(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.TrimSuffix(u.Path, "/")
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// locate returns the sitemaps named in robots.txt, falling back to
// /sitemap.xml when it exists.
func (s *SitemapService) locate(ctx context.Context, root *url.URL) ([]string, error) {
	if found := s.fromRobots(ctx, root.JoinPath("robots.txt").String()); len(found) > 0 {
		return found, nil
	}

	fallback := root.JoinPath("sitemap.xml").String()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fallback, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

// fromRobots returns the Sitemap: directives of robots.txt. Any failure
// means no directives.
func (s *SitemapService) fromRobots(ctx context.Context, robotsURL string) []string {
	body, err := get(ctx, s.client, robotsURL, s.userAgent)
	if err != nil {
		return nil
	}
	defer body.Close()

	var found []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			found = append(found, v)
		}
	}
	return found
}

// read returns the page URLs of a urlset, following sitemap indexes.
// Each sitemap is read at most once.
func (s *SitemapService) read(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := get(ctx, s.client, sitemapURL, s.userAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap %s", sitemapURL)
	}

	if root.Tag != "sitemapindex" {
		return locs(root, "url"), nil
	}
	var urls []string
	for _, child := range locs(root, "sitemap") {
		found, err := s.read(ctx, child, seen)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}
	return urls, nil
}

// locs returns the non-empty <loc> texts of the tag children of root.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		if loc := el.SelectElement("loc"); loc != nil {
			if v := strings.TrimSpace(loc.Text()); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
