// Package bluemonday normalizes extracted HTML into plain text by
// sanitizing every tag away with a strict bluemonday policy.
package bluemonday

import (
	"html"
	"regexp"
	"strings"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Converter implements crossmcp.Converter at compile time.
var _ crossmcp.Converter = (*Converter)(nil)

var (
	// blockTags end a line of text.
	blockTags  = regexp.MustCompile(`(?i)</?(p|div|section|article|h[1-6]|li|ul|ol|pre|tr|table|blockquote)\b[^>]*>|<br\s*/?>`)
	spaceRuns  = regexp.MustCompile(`[ \t]+`)
	blankLines = regexp.MustCompile(`\n\s*\n+`)
)

// Converter strips all markup. Blocks are separated by blank lines.
type Converter struct {
	policy *bluemonday.Policy
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{policy: bluemonday.StrictPolicy()}
}

// Convert returns the text content of html.
func (c *Converter) Convert(in string) (string, error) {
	if strings.TrimSpace(in) == "" {
		return "", crossmcp.Errorf(crossmcp.EINVALID, "empty HTML input")
	}

	text := blockTags.ReplaceAllString(in, "\n$0")
	text = html.UnescapeString(c.policy.Sanitize(text))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}
	text = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), nil
}
