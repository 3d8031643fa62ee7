// Package config loads server configuration from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the CROSS developer documentation site.
const DefaultBaseURL = "https://docs.crosstoken.io"

// Component names accepted in the configuration.
const (
	FetcherHTTP = "http"
	FetcherRod  = "rod"

	ExtractorGoquery     = "goquery"
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"

	ConverterMarkdown = "markdown"
	ConverterText     = "text"

	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Duration is a time.Duration written as a string such as "5m".
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the complete server configuration.
type Config struct {
	BaseURL   string `toml:"base_url" yaml:"base_url"`
	Fetcher   string `toml:"fetcher" yaml:"fetcher"`
	Extractor string `toml:"extractor" yaml:"extractor"`
	Converter string `toml:"converter" yaml:"converter"`
	UserAgent string `toml:"user_agent" yaml:"user_agent"`

	StoreExpiry  Duration `toml:"store_expiry" yaml:"store_expiry"`
	IndexExpiry  Duration `toml:"index_expiry" yaml:"index_expiry"`
	FetchTimeout Duration `toml:"fetch_timeout" yaml:"fetch_timeout"`

	// Concurrency is the number of sources fetched in parallel.
	Concurrency int `toml:"concurrency" yaml:"concurrency"`

	// RateLimit is requests per second per host. Zero disables limiting.
	RateLimit float64 `toml:"rate_limit" yaml:"rate_limit"`

	Retries    int      `toml:"retries" yaml:"retries"`
	RetryDelay Duration `toml:"retry_delay" yaml:"retry_delay"`

	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`

	GitHub  GitHubConfig  `toml:"github" yaml:"github"`
	Browser BrowserConfig `toml:"browser" yaml:"browser"`

	Sources []SourceConfig `toml:"sources" yaml:"sources"`
}

// GitHubConfig configures the repository file fetcher.
type GitHubConfig struct {
	// Token is optional; anonymous requests have a low rate limit.
	Token string `toml:"token" yaml:"token"`

	// BaseURL overrides the API endpoint, for GitHub Enterprise.
	BaseURL string `toml:"base_url" yaml:"base_url"`
}

// BrowserConfig configures the headless Chrome page fetcher.
type BrowserConfig struct {
	// Remote is the DevTools address of a running Chrome. When empty a
	// local browser is launched.
	Remote       string `toml:"remote" yaml:"remote"`
	Bin          string `toml:"bin" yaml:"bin"`
	WaitSelector string `toml:"wait_selector" yaml:"wait_selector"`
	MaxPages     int    `toml:"max_pages" yaml:"max_pages"`
}

// SourceConfig is one entry of the source list.
type SourceConfig struct {
	Kind  string `toml:"kind" yaml:"kind"`
	Path  string `toml:"path" yaml:"path"`
	Title string `toml:"title,omitempty" yaml:"title,omitempty"`
	Owner string `toml:"owner,omitempty" yaml:"owner,omitempty"`
	Repo  string `toml:"repo,omitempty" yaml:"repo,omitempty"`
	Ref   string `toml:"ref,omitempty" yaml:"ref,omitempty"`
}

// Source converts the entry to a source descriptor. An empty kind means
// a page.
func (s SourceConfig) Source() *crossmcp.Source {
	kind := crossmcp.SourceKind(s.Kind)
	if kind == "" {
		kind = crossmcp.SourcePage
	}
	return &crossmcp.Source{
		Kind:  kind,
		Path:  s.Path,
		Title: s.Title,
		Repo:  crossmcp.RepoRef{Owner: s.Owner, Name: s.Repo, Ref: s.Ref},
	}
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		Fetcher:      FetcherHTTP,
		Extractor:    ExtractorGoquery,
		Converter:    ConverterMarkdown,
		StoreExpiry:  Duration(5 * time.Minute),
		IndexExpiry:  Duration(5 * time.Minute),
		FetchTimeout: Duration(15 * time.Second),
		Concurrency:  1,
		RateLimit:    5,
		RetryDelay:   Duration(time.Second),
		LogLevel:     "info",
		LogFormat:    LogFormatText,
		Sources:      DefaultSources(),
	}
}

// DefaultSources is the stock CROSS documentation and repository list.
func DefaultSources() []SourceConfig {
	pages := []string{
		"/",
		"/getting-started",
		"/chain/overview",
		"/chain/network-information",
		"/chain/node/running-a-node",
		"/smart-contract/overview",
		"/smart-contract/deploying-contracts",
		"/smart-contract/erc20-tokens",
		"/sdk-js/getting-started",
		"/sdk-js/wallet-connection",
		"/sdk-js/transactions",
		"/sdk-unity/getting-started",
		"/sdk-unity/wallet-integration",
		"/crossx/overview",
		"/crossx/developer-mode",
		"/examples/token-transfer",
	}
	out := make([]SourceConfig, 0, len(pages)+6)
	for _, p := range pages {
		out = append(out, SourceConfig{Kind: string(crossmcp.SourcePage), Path: p})
	}

	repo := func(name, path string) SourceConfig {
		return SourceConfig{
			Kind:  string(crossmcp.SourceRepositoryFile),
			Owner: "to-nexus",
			Repo:  name,
			Path:  path,
		}
	}
	return append(out,
		repo("cross-sdk-js", "README.md"),
		repo("cross-sdk-js", "package.json"),
		repo("cross-sdk-unity", "README.md"),
		repo("cross-sdk-examples", "README.md"),
		repo("cross-sdk-examples", "react/src/App.tsx"),
		repo("cross-contracts-examples", "README.md"),
	)
}

// Load reads the file at path, choosing the format by extension, over
// the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// A file listing sources replaces the stock list rather than extending it.
	cfg.Sources = nil
	if err := cfg.decode(filepath.Ext(path), data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals data onto c. Unknown keys are rejected.
func (c *Config) decode(ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	return crossmcp.Errorf(crossmcp.EINVALID, "unsupported config format %q", ext)
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return crossmcp.Errorf(crossmcp.EINVALID, "base_url required")
	}
	if err := oneOf("fetcher", c.Fetcher, FetcherHTTP, FetcherRod); err != nil {
		return err
	}
	if err := oneOf("extractor", c.Extractor, ExtractorGoquery, ExtractorTrafilatura, ExtractorReadability); err != nil {
		return err
	}
	if err := oneOf("converter", c.Converter, ConverterMarkdown, ConverterText); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, LogFormatText, LogFormatJSON); err != nil {
		return err
	}
	if c.StoreExpiry <= 0 {
		return crossmcp.Errorf(crossmcp.EINVALID, "store_expiry must be positive")
	}
	if c.IndexExpiry <= 0 {
		return crossmcp.Errorf(crossmcp.EINVALID, "index_expiry must be positive")
	}
	if c.FetchTimeout < 0 {
		return crossmcp.Errorf(crossmcp.EINVALID, "fetch_timeout must not be negative")
	}
	if c.Concurrency < 1 {
		return crossmcp.Errorf(crossmcp.EINVALID, "concurrency must be at least 1")
	}
	if c.RateLimit < 0 {
		return crossmcp.Errorf(crossmcp.EINVALID, "rate_limit must not be negative")
	}
	if c.Retries < 0 {
		return crossmcp.Errorf(crossmcp.EINVALID, "retries must not be negative")
	}
	if len(c.Sources) == 0 {
		return crossmcp.Errorf(crossmcp.EINVALID, "at least one source required")
	}
	for i, s := range c.Sources {
		if err := s.Source().Validate(); err != nil {
			return crossmcp.Errorf(crossmcp.EINVALID, "sources[%d]: %s", i, crossmcp.ErrorMessage(err))
		}
	}
	return nil
}

// Registry builds the source registry.
func (c *Config) Registry() *crossmcp.Registry {
	sources := make([]*crossmcp.Source, len(c.Sources))
	for i, s := range c.Sources {
		sources[i] = s.Source()
	}
	return crossmcp.NewRegistry(c.BaseURL, sources)
}

// RetryDelays expands Retries and RetryDelay into the store's backoff
// schedule, doubling the delay per attempt.
func (c *Config) RetryDelays() []time.Duration {
	if c.Retries <= 0 {
		return nil
	}
	delays := make([]time.Duration, c.Retries)
	d := c.RetryDelay.Std()
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

func oneOf(field, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return crossmcp.Errorf(crossmcp.EINVALID, "unknown %s %q (want one of %s)", field, value, strings.Join(allowed, ", "))
}
