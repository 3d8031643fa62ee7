// Package goldmark renders repository Markdown files to HTML so they go
// through the same conversion as documentation pages.
package goldmark

import (
	"bytes"
	"strings"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Ensure Renderer implements crossmcp.MarkdownRenderer at compile time.
var _ crossmcp.MarkdownRenderer = (*Renderer)(nil)

// Renderer renders GitHub-flavored Markdown.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Render returns the HTML of markdown and the text of its first heading.
func (r *Renderer) Render(markdown string) (string, string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", "", crossmcp.Errorf(crossmcp.EINVALID, "empty markdown input")
	}

	src := []byte(markdown)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			title = strings.TrimSpace(plainText(h, src))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", "", err
	}
	return buf.String(), title, nil
}

// plainText concatenates the text segments below n.
func plainText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
