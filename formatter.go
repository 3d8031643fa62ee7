package crossmcp

import (
	"fmt"
	"strings"
)

// FormatDocuments renders documents as Markdown sections for terminal
// output. Uses the title when set, otherwise the document ID.
// Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := doc.Title
		if header == "" {
			header = doc.ID
		}
		var b strings.Builder
		b.WriteString("## " + header + "\n")
		if doc.URL != "" {
			b.WriteString("<" + doc.URL + ">\n")
		}
		b.WriteString("\n" + doc.Content)
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// FormatResults renders ranked search results, one numbered entry per
// result followed by its highlights.
func FormatResults(results []*ScoredResult) string {
	if len(results) == 0 {
		return "No results."
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s [%s] (%.4f)\n   id: %s\n",
			i+1, r.Document.Title, r.Document.Category, r.Score, r.Document.ID)
		for _, h := range r.Highlights {
			b.WriteString("   > " + strings.ReplaceAll(h, "\n", " ") + "\n")
		}
	}
	return b.String()
}
