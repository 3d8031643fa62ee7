package crossmcp

import "context"

// Search limits.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// Field names a searchable document field.
type Field string

// Searchable fields.
const (
	FieldContent  Field = "content"
	FieldTitle    Field = "title"
	FieldCategory Field = "category"
)

// Value returns the text of the field for doc.
func (f Field) Value(doc *Document) string {
	switch f {
	case FieldContent:
		return doc.Content
	case FieldTitle:
		return doc.Title
	case FieldCategory:
		return string(doc.Category)
	}
	return ""
}

// SearchKey is a weighted field used when ranking.
type SearchKey struct {
	Field  Field
	Weight float64
}

// DefaultSearchKeys are the fixed ranking weights: content dominates,
// title follows, category contributes a little.
var DefaultSearchKeys = []SearchKey{
	{Field: FieldContent, Weight: 0.6},
	{Field: FieldTitle, Weight: 0.4},
	{Field: FieldCategory, Weight: 0.3},
}

// Hit is a matched span inside a document field, in byte offsets.
type Hit struct {
	Field Field
	Start int
	End   int
}

// Match is a fuzzy-ranked document. Lower scores are better matches.
type Match struct {
	Document *Document
	Score    float64
	Hits     []Hit
}

// Ranker builds fuzzy-match structures over a document snapshot.
type Ranker interface {
	// Build indexes docs over the weighted keys. The returned Matcher only
	// ever sees these documents.
	Build(docs []*Document, keys []SearchKey) (Matcher, error)
}

// Matcher ranks the documents it was built over against a query.
type Matcher interface {
	// Match returns matching documents sorted ascending by score.
	Match(query string) []*Match
}

// SearchOptions configures a search.
type SearchOptions struct {
	Query    string   `json:"query"`
	Category Category `json:"category,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// ScoredResult is a search hit returned to callers.
type ScoredResult struct {
	Document   *Document `json:"document"`
	Score      float64   `json:"score"`
	Highlights []string  `json:"highlights"`
}

// SearchService provides ranked search over the document snapshot.
type SearchService interface {
	// Search returns documents matching opts.Query ordered by relevance.
	// Returns EUNAVAILABLE if no index could be built.
	Search(ctx context.Context, opts SearchOptions) ([]*ScoredResult, error)
}

// ClampLimit applies the default and maximum search limits.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}
