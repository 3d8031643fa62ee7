package mock

import crossmcp "github.com/jeeu-dev/cross-mcp"

var (
	_ crossmcp.Converter        = (*Converter)(nil)
	_ crossmcp.MarkdownRenderer = (*MarkdownRenderer)(nil)
)

// Converter is a mock implementation of crossmcp.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// MarkdownRenderer is a mock implementation of crossmcp.MarkdownRenderer.
type MarkdownRenderer struct {
	RenderFn func(markdown string) (string, string, error)
}

func (r *MarkdownRenderer) Render(markdown string) (string, string, error) {
	return r.RenderFn(markdown)
}
