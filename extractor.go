package crossmcp

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from headings or metadata.
	Title string

	// ContentHTML is the primary content region as clean HTML.
	// Boilerplate (nav, header, footer, sidebar) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the primary content region.
	// The pageURL is used to resolve relative references and may be empty.
	Extract(html string, pageURL string) (*ExtractResult, error)
}
