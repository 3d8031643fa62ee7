package crossmcp

import (
	"context"
	"regexp"
	"slices"
	"strings"
)

// SitemapService discovers page URLs of a documentation site.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the site's sitemaps.
	// Sitemap locations come from robots.txt, falling back to
	// /sitemap.xml; sitemap indexes are followed. A nil filter keeps
	// every URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter includes and excludes URLs by pattern.
type URLFilter struct {
	// Include keeps only URLs matching at least one pattern, when set.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// Match reports whether url passes the filter. A nil filter passes all.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(url) }
	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}

// SourcesFromURLs turns discovered URLs into page sources. URLs under
// baseURL become relative paths; others are kept absolute. Duplicate
// document IDs are dropped, keeping the first.
func SourcesFromURLs(baseURL string, urls []string) []*Source {
	base := strings.TrimSuffix(baseURL, "/")
	seen := make(map[string]bool, len(urls))
	out := make([]*Source, 0, len(urls))
	for _, u := range urls {
		p := u
		if base != "" && strings.HasPrefix(u, base) {
			p = strings.TrimPrefix(u, base)
			if p == "" {
				p = "/"
			}
		}
		src := &Source{Kind: SourcePage, Path: p}
		id := DeriveID(src)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, src)
	}
	return out
}
