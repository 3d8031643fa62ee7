package crossmcp

import (
	"context"
	"strings"
	"time"
)

// Category tags a document with the part of the platform it documents.
type Category string

// Document categories. CategoryAll is only meaningful as a search filter.
const (
	CategoryAll           Category = "all"
	CategorySmartContract Category = "smart-contract"
	CategorySDKJS         Category = "sdk-js"
	CategorySDKUnity      Category = "sdk-unity"
	CategoryChain         Category = "chain"
	CategoryCrossX        Category = "crossx"
	CategoryGitHub        Category = "github"
	CategoryGeneral       Category = "general"
)

// FilterCategories lists the values accepted as a search category filter.
var FilterCategories = []Category{
	CategorySmartContract,
	CategorySDKJS,
	CategorySDKUnity,
	CategoryChain,
	CategoryCrossX,
	CategoryGitHub,
	CategoryAll,
}

// ParseCategory validates a category filter. An empty string means all.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return CategoryAll, nil
	}
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FilterCategories {
		if c == known {
			return c, nil
		}
	}
	return "", Errorf(EINVALID, "unknown category %q", s)
}

// Kind distinguishes primary documentation from repository artifacts and
// illustrative examples.
type Kind string

// Document kinds.
const (
	KindDocumentation Kind = "documentation"
	KindRepository    Kind = "repository"
	KindExample       Kind = "example"
)

// Document is a normalized unit of retrievable content.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Category    Category  `json:"category"`
	Kind        Kind      `json:"kind,omitempty"`
	ContentHash string    `json:"contentHash,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "document ID required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return Errorf(EINVALID, "document %q has no content", d.ID)
	}
	return nil
}

// Clone returns a shallow copy of the document. Cached documents are shared
// between readers and must not be modified in place.
func (d *Document) Clone() *Document {
	other := *d
	return &other
}

// DocumentService represents a read-only view of the document snapshot.
// Implementations refresh their snapshot lazily when it is stale.
type DocumentService interface {
	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, in source order.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	Kind       *Kind     `json:"kind"`
	Category   *Category `json:"category"`
	IDContains string    `json:"idContains"`
}

// Match returns true if the document passes the filter.
func (f DocumentFilter) Match(doc *Document) bool {
	if f.Kind != nil && doc.Kind != *f.Kind {
		return false
	}
	if f.Category != nil && *f.Category != CategoryAll && doc.Category != *f.Category {
		return false
	}
	if f.IDContains != "" && !strings.Contains(strings.ToLower(doc.ID), strings.ToLower(f.IDContains)) {
		return false
	}
	return true
}

// StoreStats describes the current document snapshot.
type StoreStats struct {
	Documents   int       `json:"documents"`
	RefreshedAt time.Time `json:"refreshedAt"`
}
