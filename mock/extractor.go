package mock

import crossmcp "github.com/jeeu-dev/cross-mcp"

var _ crossmcp.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of crossmcp.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*crossmcp.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*crossmcp.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
