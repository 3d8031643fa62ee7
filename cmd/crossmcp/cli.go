package main

import (
	"context"
	"io"
	"log/slog"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/config"
	crossmcptools "github.com/jeeu-dev/cross-mcp/mcp"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Version  string
	Config   *config.Config
	Logger   *slog.Logger
	Registry *crossmcp.Registry
	Query    crossmcp.QueryService
	Tools    *crossmcptools.Server
	Stats    func() crossmcp.StoreStats
	Warm     func(ctx context.Context) error
	Sitemaps crossmcp.SitemapService
	Pages    crossmcp.Fetcher
	Metrics  *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string `short:"C" env:"CROSSMCP_CONFIG" type:"path" help:"Configuration file (.toml, .yaml)"`
	LogLevel    string `env:"CROSSMCP_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`
	GitHubToken string `name:"github-token" env:"GITHUB_TOKEN" help:"GitHub token for repository sources"`

	Serve    ServeCmd    `cmd:"" help:"Run the MCP server (stdio unless --http is set)"`
	Search   SearchCmd   `cmd:"" help:"Search the documentation"`
	Doc      DocCmd      `cmd:"" help:"Print a document by ID"`
	Testnet  TestnetCmd  `cmd:"" help:"Print testnet instructions"`
	GitHub   GitHubCmd   `cmd:"" name:"github" help:"List GitHub repository resources"`
	Sources  SourcesCmd  `cmd:"" help:"List configured sources with derived metadata"`
	Discover DiscoverCmd `cmd:"" help:"Discover page sources of a site and print them as configuration"`
	Call     CallCmd     `cmd:"" help:"Call an MCP tool by name with JSON arguments"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP string `help:"Serve streamable HTTP on this address (e.g. :8080)"`
	Warm bool   `help:"Fetch all sources before accepting calls"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string `arg:"" help:"Search query"`
	Category string `short:"c" default:"all" help:"Category filter"`
	Limit    int    `short:"n" default:"10" help:"Maximum results"`
}

// DocCmd is the "doc" subcommand.
type DocCmd struct {
	ID string `arg:"" help:"Document ID"`
}

// TestnetCmd is the "testnet" subcommand.
type TestnetCmd struct {
	Type string `arg:"" optional:"" default:"all" enum:"faucet,setup,dev-mode,all" help:"Instruction type"`
}

// GitHubCmd is the "github" subcommand.
type GitHubCmd struct {
	Type   string `default:"all" enum:"sdk,examples,all" help:"Repository type"`
	NoCode bool   `help:"Show a preview instead of full file contents"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL    string   `arg:"" help:"Documentation site URL"`
	Filter []string `short:"F" name:"filter" help:"Keep URLs matching regex (repeatable)"`
	Links  bool     `help:"Read links from the page instead of the sitemap"`
}

// CallCmd is the "call" subcommand.
type CallCmd struct {
	Tool string `arg:"" help:"Tool name"`
	Args string `arg:"" optional:"" default:"{}" help:"JSON arguments"`
}
