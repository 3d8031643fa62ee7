package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolSearchDocuments = "search-documents"
	ToolDocumentByID    = "document-by-id"
	ToolTestnetInfo     = "testnet-info"
	ToolGitHubResources = "github-resources"
)

// handlerFunc answers one tool call with a JSON-serializable payload.
type handlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// toolEntry pairs a tool definition with its handler factory.
type toolEntry struct {
	def     *mcp.Tool
	handler func(*Server) handlerFunc
}

// toolRegistry lists the tools in registration order.
var toolRegistry = []toolEntry{
	{
		def: &mcp.Tool{
			Name:        ToolSearchDocuments,
			Description: "Search CROSS developer documentation and GitHub resources. Returns documents ranked by relevance with highlighted snippets.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"query":    {Type: "string", Description: "Search query"},
					"category": {Type: "string", Description: "Restrict results to a category", Enum: enum(categoryNames()...), Default: json.RawMessage(`"all"`)},
					"limit":    {Type: "number", Description: "Maximum number of results (at most 50)", Default: json.RawMessage(`10`)},
				},
				Required: []string{"query"},
			},
		},
		handler: func(s *Server) handlerFunc { return s.handleSearchDocuments },
	},
	{
		def: &mcp.Tool{
			Name:        ToolDocumentByID,
			Description: "Retrieve the full content of a documentation page or repository file by its document ID.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"documentId": {Type: "string", Description: "Document ID as returned by search-documents"},
				},
				Required: []string{"documentId"},
			},
		},
		handler: func(s *Server) handlerFunc { return s.handleDocumentByID },
	},
	{
		def: &mcp.Tool{
			Name:        ToolTestnetInfo,
			Description: "Instructions for using the CROSS testnet: faucet, network setup and developer mode.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"type": {Type: "string", Description: "Which instructions to return", Enum: enum("faucet", "setup", "dev-mode", "all"), Default: json.RawMessage(`"all"`)},
				},
			},
		},
		handler: func(s *Server) handlerFunc { return s.handleTestnetInfo },
	},
	{
		def: &mcp.Tool{
			Name:        ToolGitHubResources,
			Description: "List files fetched from CROSS GitHub repositories, such as SDK sources and examples.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"type":        {Type: "string", Description: "Which repositories to list", Enum: enum("sdk", "examples", "all"), Default: json.RawMessage(`"all"`)},
					"includeCode": {Type: "boolean", Description: "Include full file contents; otherwise a short preview", Default: json.RawMessage(`true`)},
				},
			},
		},
		handler: func(s *Server) handlerFunc { return s.handleGitHubResources },
	},
}

// ToolNames returns the registered tool names in order.
func ToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for _, t := range toolRegistry {
		names = append(names, t.def.Name)
	}
	return names
}

func enum(values ...string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func categoryNames() []string {
	names := make([]string, len(crossmcp.FilterCategories))
	for i, c := range crossmcp.FilterCategories {
		names[i] = string(c)
	}
	return names
}

type searchArgs struct {
	Query    string   `json:"query"`
	Category string   `json:"category"`
	Limit    *float64 `json:"limit"`
}

type searchPayload struct {
	Query    string                   `json:"query"`
	Category crossmcp.Category        `json:"category"`
	Total    int                      `json:"total"`
	Results  []*crossmcp.ScoredResult `json:"results"`
}

func (s *Server) handleSearchDocuments(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decode[searchArgs](raw)
	if err != nil {
		return nil, err
	}
	limit := crossmcp.DefaultSearchLimit
	if args.Limit != nil {
		// Clamp before converting: int() of an out-of-range float is undefined.
		limit = int(min(max(*args.Limit, 0), crossmcp.MaxSearchLimit))
	}

	results, err := s.Query.SearchDocuments(ctx, args.Query, args.Category, limit)
	if err != nil {
		return nil, err
	}
	category := crossmcp.Category(args.Category)
	if category == "" {
		category = crossmcp.CategoryAll
	}
	return searchPayload{
		Query:    args.Query,
		Category: category,
		Total:    len(results),
		Results:  results,
	}, nil
}

type documentArgs struct {
	DocumentID string `json:"documentId"`
}

type documentPayload struct {
	Found      bool               `json:"found"`
	DocumentID string             `json:"documentId"`
	Document   *crossmcp.Document `json:"document,omitempty"`
	Message    string             `json:"message,omitempty"`
}

func (s *Server) handleDocumentByID(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decode[documentArgs](raw)
	if err != nil {
		return nil, err
	}

	doc, err := s.Query.DocumentByID(ctx, args.DocumentID)
	if crossmcp.ErrorCode(err) == crossmcp.ENOTFOUND {
		return documentPayload{
			DocumentID: args.DocumentID,
			Message:    crossmcp.ErrorMessage(err),
		}, nil
	} else if err != nil {
		return nil, err
	}
	return documentPayload{Found: true, DocumentID: doc.ID, Document: doc}, nil
}

type testnetArgs struct {
	Type string `json:"type"`
}

type testnetPayload struct {
	Type    string                  `json:"type"`
	Records []*crossmcp.TestnetInfo `json:"records"`
}

func (s *Server) handleTestnetInfo(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decode[testnetArgs](raw)
	if err != nil {
		return nil, err
	}
	if args.Type == "" {
		args.Type = string(crossmcp.TestnetAll)
	}

	records, err := s.Query.TestnetInfo(ctx, args.Type)
	if err != nil {
		return nil, err
	}
	return testnetPayload{Type: args.Type, Records: records}, nil
}

type githubArgs struct {
	Type        string `json:"type"`
	IncludeCode *bool  `json:"includeCode"`
}

type githubPayload struct {
	Type        crossmcp.GitHubResourceType `json:"type"`
	IncludeCode bool                        `json:"includeCode"`
	Total       int                         `json:"total"`
	Resources   []*crossmcp.Document        `json:"resources"`
}

func (s *Server) handleGitHubResources(ctx context.Context, raw json.RawMessage) (any, error) {
	args, err := decode[githubArgs](raw)
	if err != nil {
		return nil, err
	}
	opts := crossmcp.GitHubResourcesOptions{
		Type:        crossmcp.GitHubResourceType(args.Type),
		IncludeCode: args.IncludeCode == nil || *args.IncludeCode,
	}
	if opts.Type == "" {
		opts.Type = crossmcp.GitHubAll
	}

	docs, err := s.Query.GitHubResources(ctx, opts)
	if err != nil {
		return nil, err
	}
	return githubPayload{
		Type:        opts.Type,
		IncludeCode: opts.IncludeCode,
		Total:       len(docs),
		Resources:   docs,
	}, nil
}

// decode unmarshals tool arguments. Missing arguments decode as the zero
// value.
func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 || string(raw) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, crossmcp.Errorf(crossmcp.EINVALID, "invalid arguments: %v", err)
	}
	return v, nil
}
