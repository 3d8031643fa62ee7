package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/jeeu-dev/cross-mcp/config"
	crossmcptools "github.com/jeeu-dev/cross-mcp/mcp"
)

// Version is set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. When Query is set, Run skips
	// wiring the fetch pipeline and uses these instead.
	Query    crossmcp.QueryService
	Stats    func() crossmcp.StoreStats
	Sitemaps crossmcp.SitemapService
	Pages    crossmcp.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases resources opened by Run.
func (m *Main) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crossmcp"),
		kong.Description("Serve CROSS developer documentation to AI tools over MCP"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'crossmcp --help' to see available commands")
	}
	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	case "version", "--version":
		fmt.Fprintf(stdout, "crossmcp %s\n", Version)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set CROSSMCP_CONFIG or pass --config to choose a configuration file")
		return err
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.GitHubToken != "" {
		cfg.GitHub.Token = cli.GitHubToken
	}

	logger, err := newLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	deps.Config = cfg
	deps.Logger = logger
	deps.Registry = cfg.Registry()
	deps.Version = Version

	if m.Query != nil {
		deps.Query = m.Query
		deps.Stats = m.Stats
		deps.Sitemaps = m.Sitemaps
		deps.Pages = m.Pages
	} else {
		defer m.Close()
		if err := m.wire(deps); err != nil {
			return err
		}
	}
	deps.Tools = crossmcptools.NewServer(deps.Query, Version, logger)

	return kongCtx.Run(deps)
}

// newLogger writes to w, which is never stdout: the stdio transport owns it.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
