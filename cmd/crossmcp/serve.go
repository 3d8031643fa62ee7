package main

import (
	"fmt"

	crosshttp "github.com/jeeu-dev/cross-mcp/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if c.Warm && deps.Warm != nil {
		if err := deps.Warm(deps.Ctx); err != nil {
			// Not fatal: the next call retries the refresh.
			deps.Logger.Warn("warm up failed", "err", err)
		}
	}

	if c.HTTP == "" {
		deps.Logger.Info("serving mcp on stdio", "version", deps.Version, "sources", len(deps.Registry.ListSources()))
		return deps.Tools.Run(deps.Ctx)
	}

	srv := crosshttp.NewServer(deps.Tools.HTTPHandler())
	srv.Stats = deps.Stats
	srv.Logger = deps.Logger
	if deps.Metrics != nil {
		srv.Gatherer = deps.Metrics
	}
	if err := srv.Serve(deps.Ctx, c.HTTP); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
