package crossmcp

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// SourceKind discriminates how a source is fetched.
type SourceKind string

// Source kinds.
const (
	SourcePage           SourceKind = "page"
	SourceRepositoryFile SourceKind = "repository-file"
)

// RepoRef identifies a GitHub repository at a ref.
type RepoRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
	Ref   string `json:"ref,omitempty"`
}

// String returns the "owner/name" form of the reference.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// Source describes one remote location a document is derived from.
// Everything needed to derive the document ID and category is present
// without fetching.
type Source struct {
	Kind  SourceKind `json:"kind"`
	Path  string     `json:"path"`
	Repo  RepoRef    `json:"repo,omitempty"`
	Title string     `json:"title,omitempty"`
}

// Validate returns an error if the source descriptor is unusable.
func (s *Source) Validate() error {
	switch s.Kind {
	case SourcePage:
	case SourceRepositoryFile:
		if s.Repo.Owner == "" || s.Repo.Name == "" {
			return Errorf(EINVALID, "repository source %q requires owner and name", s.Path)
		}
		if strings.Trim(s.Path, "/") == "" {
			return Errorf(EINVALID, "repository source %s requires a file path", s.Repo)
		}
	default:
		return Errorf(EINVALID, "unknown source kind %q", s.Kind)
	}
	return nil
}

// Registry is the ordered list of configured document sources.
type Registry struct {
	baseURL string
	sources []*Source
}

// NewRegistry returns a registry over the given sources. Page paths are
// resolved against baseURL.
func NewRegistry(baseURL string, sources []*Source) *Registry {
	return &Registry{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		sources: sources,
	}
}

// ListSources returns the sources in configuration order.
func (r *Registry) ListSources() []*Source {
	out := make([]*Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// URL returns the canonical location of a source.
func (r *Registry) URL(src *Source) string {
	return SourceURL(r.baseURL, src)
}

// BaseURL returns the documentation site the page sources belong to.
func (r *Registry) BaseURL() string {
	return r.baseURL
}

// SourceURL returns the canonical location of src. Page paths are joined
// to baseURL; repository files point at their GitHub blob view.
func SourceURL(baseURL string, src *Source) string {
	switch src.Kind {
	case SourceRepositoryFile:
		ref := src.Repo.Ref
		if ref == "" {
			ref = "main"
		}
		return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s",
			src.Repo.Owner, src.Repo.Name, ref, strings.TrimPrefix(src.Path, "/"))
	default:
		p := src.Path
		if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			return p
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		return strings.TrimSuffix(baseURL, "/") + p
	}
}

// DeriveID returns the document ID for a source. The derivation only
// depends on the descriptor, so repeated fetches of a source always land
// in the same cache slot.
func DeriveID(src *Source) string {
	if src.Kind == SourceRepositoryFile {
		return "github/" + src.Repo.Owner + "/" + src.Repo.Name + "/" + strings.Trim(src.Path, "/")
	}

	p := src.Path
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if i := strings.Index(p, "://"); i >= 0 {
		p = p[i+3:]
		if j := strings.Index(p, "/"); j >= 0 {
			p = p[j:]
		} else {
			p = ""
		}
	}
	p = strings.Trim(p, "/")
	for _, ext := range []string{".html", ".htm", ".md", ".mdx"} {
		p = strings.TrimSuffix(p, ext)
	}
	if p == "" {
		return "index"
	}
	return strings.ToLower(p)
}

// categoryRule maps an identifier substring to a category.
type categoryRule struct {
	substr   string
	category Category
}

// categoryRules is evaluated in order; the first match wins.
var categoryRules = []categoryRule{
	{"smart-contract", CategorySmartContract},
	{"sdk-js", CategorySDKJS},
	{"sdk/js", CategorySDKJS},
	{"javascript", CategorySDKJS},
	{"sdk-unity", CategorySDKUnity},
	{"unity", CategorySDKUnity},
	{"crossx", CategoryCrossX},
	{"chain", CategoryChain},
	{"network", CategoryChain},
	{"node", CategoryChain},
}

// DeriveCategory returns the category of a source from its identifier.
func DeriveCategory(src *Source) Category {
	if src.Kind == SourceRepositoryFile {
		return CategoryGitHub
	}
	id := DeriveID(src)
	for _, rule := range categoryRules {
		if strings.Contains(id, rule.substr) {
			return rule.category
		}
	}
	return CategoryGeneral
}

// DeriveKind returns the document kind of a source.
func DeriveKind(src *Source) Kind {
	if src.Kind == SourceRepositoryFile {
		return KindRepository
	}
	if strings.Contains(DeriveID(src), "example") {
		return KindExample
	}
	return KindDocumentation
}

// DeriveTitle returns a human readable title built from the last path
// segment of the source. Used when extraction finds no title.
func DeriveTitle(src *Source) string {
	if src.Title != "" {
		return src.Title
	}
	if src.Kind == SourceRepositoryFile {
		return src.Repo.Name + ": " + path.Base(strings.Trim(src.Path, "/"))
	}
	base := path.Base(DeriveID(src))
	base = strings.TrimSuffix(base, path.Ext(base))

	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
