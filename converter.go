package crossmcp

// Converter converts extracted HTML into normalized document text.
type Converter interface {
	// Convert transforms HTML content into text with markup stripped.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}

// MarkdownRenderer renders Markdown files into HTML.
type MarkdownRenderer interface {
	// Render returns the HTML rendering of markdown and the text of its
	// first heading, if any.
	Render(markdown string) (html string, title string, err error)
}
