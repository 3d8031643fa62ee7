package main

import (
	"fmt"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/bluemonday"
	"github.com/jeeu-dev/cross-mcp/config"
	"github.com/jeeu-dev/cross-mcp/github"
	"github.com/jeeu-dev/cross-mcp/goldmark"
	"github.com/jeeu-dev/cross-mcp/goquery"
	"github.com/jeeu-dev/cross-mcp/htmltomarkdown"
	crosshttp "github.com/jeeu-dev/cross-mcp/http"
	"github.com/jeeu-dev/cross-mcp/normalize"
	crossprom "github.com/jeeu-dev/cross-mcp/prometheus"
	"github.com/jeeu-dev/cross-mcp/query"
	"github.com/jeeu-dev/cross-mcp/readability"
	"github.com/jeeu-dev/cross-mcp/rod"
	"github.com/jeeu-dev/cross-mcp/search"
	crossslog "github.com/jeeu-dev/cross-mcp/slog"
	"github.com/jeeu-dev/cross-mcp/smetrics"
	"github.com/jeeu-dev/cross-mcp/source"
	"github.com/jeeu-dev/cross-mcp/store"
	"github.com/jeeu-dev/cross-mcp/trafilatura"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// wire builds the fetch, store, search and query pipeline from the
// configuration in deps.
func (m *Main) wire(deps *Dependencies) error {
	cfg := deps.Config
	logger := deps.Logger

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := crossprom.NewMetrics(reg)

	pages, err := newPageFetcher(cfg)
	if err != nil {
		return err
	}
	m.closers = append(m.closers, pages)
	loggedPages := crossslog.NewLoggingFetcher(pages, logger)

	ghOpts := []github.Option{github.WithToken(cfg.GitHub.Token), github.WithTimeout(cfg.FetchTimeout.Std())}
	if cfg.GitHub.BaseURL != "" {
		ghOpts = append(ghOpts, github.WithBaseURL(cfg.GitHub.BaseURL))
	}
	repos, err := github.NewClient(ghOpts...)
	if err != nil {
		return err
	}

	var fetcher crossmcp.SourceFetcher = source.NewFetcher(cfg.BaseURL, loggedPages,
		crossslog.NewLoggingRepositoryFetcher(repos, logger))
	fetcher = crossprom.NewSourceFetcher(fetcher, metrics)
	fetcher = crossslog.NewLoggingSourceFetcher(fetcher, logger)

	extractor, err := newExtractor(cfg.Extractor)
	if err != nil {
		return err
	}
	converter, err := newConverter(cfg.Converter)
	if err != nil {
		return err
	}
	normalizer := &normalize.Normalizer{
		Extractor: extractor,
		Converter: converter,
		Renderer:  goldmark.NewRenderer(),
		BaseURL:   cfg.BaseURL,
	}

	st := store.New(deps.Registry, fetcher, normalizer)
	st.Expiry = cfg.StoreExpiry.Std()
	st.FetchTimeout = cfg.FetchTimeout.Std()
	st.Concurrency = cfg.Concurrency
	st.RetryDelays = cfg.RetryDelays()
	st.Logger = logger
	if cfg.RateLimit > 0 {
		st.RateLimiter = store.NewDomainLimiter(cfg.RateLimit)
	}

	idx := search.NewIndex(st, smetrics.NewRanker())
	idx.Expiry = cfg.IndexExpiry.Std()
	idx.Logger = logger

	var q crossmcp.QueryService = query.NewService(st, idx)
	q = crossprom.NewQueryService(q, metrics)
	q = crossslog.NewLoggingQueryService(q, logger)
	crossprom.RegisterStoreStats(reg, st.Stats)

	deps.Query = q
	deps.Stats = st.Stats
	deps.Warm = idx.RebuildIfStale
	deps.Metrics = reg
	deps.Pages = loggedPages
	deps.Sitemaps = crossslog.NewLoggingSitemapService(crosshttp.NewSitemapService(nil), logger)
	return nil
}

func newPageFetcher(cfg *config.Config) (crossmcp.Fetcher, error) {
	switch cfg.Fetcher {
	case config.FetcherRod:
		opts := []rod.Option{rod.WithFetchTimeout(cfg.FetchTimeout.Std())}
		if cfg.Browser.Remote != "" {
			opts = append(opts, rod.WithRemote(cfg.Browser.Remote))
		}
		if cfg.Browser.Bin != "" {
			opts = append(opts, rod.WithBin(cfg.Browser.Bin))
		}
		if cfg.Browser.WaitSelector != "" {
			opts = append(opts, rod.WithWaitSelector(cfg.Browser.WaitSelector))
		}
		if cfg.Browser.MaxPages > 0 {
			opts = append(opts, rod.WithMaxPages(cfg.Browser.MaxPages))
		}
		return rod.NewFetcher(opts...), nil
	case config.FetcherHTTP:
		opts := []crosshttp.Option{crosshttp.WithTimeout(cfg.FetchTimeout.Std())}
		if cfg.UserAgent != "" {
			opts = append(opts, crosshttp.WithUserAgent(cfg.UserAgent))
		}
		return crosshttp.NewFetcher(opts...), nil
	}
	return nil, fmt.Errorf("unknown fetcher %q", cfg.Fetcher)
}

func newExtractor(name string) (crossmcp.Extractor, error) {
	switch name {
	case config.ExtractorGoquery:
		return goquery.NewExtractor(), nil
	case config.ExtractorTrafilatura:
		return trafilatura.NewExtractor(), nil
	case config.ExtractorReadability:
		return readability.NewExtractor(), nil
	}
	return nil, fmt.Errorf("unknown extractor %q", name)
}

func newConverter(name string) (crossmcp.Converter, error) {
	switch name {
	case config.ConverterMarkdown:
		return htmltomarkdown.NewConverter(), nil
	case config.ConverterText:
		return bluemonday.NewConverter(), nil
	}
	return nil, fmt.Errorf("unknown converter %q", name)
}
