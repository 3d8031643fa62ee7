package search

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Highlight limits.
const (
	HighlightRadius = 50
	MaxHighlights   = 3
)

// Highlights returns up to MaxHighlights snippets of content around the
// content hits, in position order. Each snippet extends up to
// HighlightRadius characters either side of its hit and is trimmed.
// Duplicate snippets are skipped.
func Highlights(content string, hits []crossmcp.Hit) []string {
	spans := make([]crossmcp.Hit, 0, len(hits))
	for _, h := range hits {
		if h.Field == crossmcp.FieldContent && h.Start >= 0 && h.End <= len(content) && h.Start < h.End {
			spans = append(spans, h)
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	out := make([]string, 0, MaxHighlights)
	for _, h := range spans {
		start, end := h.Start, h.End
		for range HighlightRadius {
			if start == 0 {
				break
			}
			_, size := utf8.DecodeLastRuneInString(content[:start])
			start -= size
		}
		for range HighlightRadius {
			if end == len(content) {
				break
			}
			_, size := utf8.DecodeRuneInString(content[end:])
			end += size
		}

		snippet := strings.TrimSpace(content[start:end])
		if snippet == "" || slices.Contains(out, snippet) {
			continue
		}
		out = append(out, snippet)
		if len(out) == MaxHighlights {
			break
		}
	}
	return out
}
