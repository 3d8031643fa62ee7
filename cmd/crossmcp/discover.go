package main

import (
	"fmt"
	"regexp"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/config"
	"github.com/jeeu-dev/cross-mcp/goquery"
	"github.com/pelletier/go-toml/v2"
)

// Run executes the discover command. URLs come from the site's sitemap,
// or from the links of the page itself when there is none or --links is
// set. The result is printed as [[sources]] entries.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	var filter *crossmcp.URLFilter
	if len(c.Filter) > 0 {
		filter = &crossmcp.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			filter.Include = append(filter.Include, re)
		}
	}

	var urls []string
	if !c.Links {
		var err error
		urls, err = deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", crossmcp.ErrorMessage(err))
			return err
		}
	}
	if len(urls) == 0 {
		if !c.Links {
			fmt.Fprintln(deps.Stderr, "No sitemap found, reading page links instead.")
		}
		html, err := deps.Pages.Fetch(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", crossmcp.ErrorMessage(err))
			return err
		}
		links, err := goquery.ExtractLinks(html, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", crossmcp.ErrorMessage(err))
			return err
		}
		for _, u := range links {
			if filter.Match(u) {
				urls = append(urls, u)
			}
		}
	}

	sources := crossmcp.SourcesFromURLs(c.URL, urls)
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stderr, "No pages found.")
		return nil
	}

	out := struct {
		Sources []config.SourceConfig `toml:"sources"`
	}{}
	for _, src := range sources {
		out.Sources = append(out.Sources, config.SourceConfig{Kind: string(src.Kind), Path: src.Path})
	}
	b, err := toml.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "base_url = %q\n\n", c.URL)
	_, err = deps.Stdout.Write(b)
	return err
}
