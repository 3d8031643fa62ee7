// Package mcp exposes the query service as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Name is the implementation name reported to clients.
const Name = "cross-mcp"

// ErrorPrefix starts the text of every failed tool result.
const ErrorPrefix = "Error: "

// Server registers the CROSS documentation tools on an MCP server.
type Server struct {
	Query  crossmcp.QueryService
	Logger *slog.Logger

	server   *mcp.Server
	handlers map[string]handlerFunc
}

// NewServer returns a Server answering tool calls from query.
func NewServer(query crossmcp.QueryService, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		Query:    query,
		Logger:   logger,
		server:   mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil),
		handlers: make(map[string]handlerFunc, len(toolRegistry)),
	}
	for _, t := range toolRegistry {
		s.handlers[t.def.Name] = t.handler(s)
		s.server.AddTool(t.def, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return s.Handle(ctx, req.Params.Name, req.Params.Arguments), nil
		})
	}
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Run serves the tools over stdin and stdout until ctx is canceled or
// the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves the tools over the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// Handle dispatches a tool call by name. It never fails: errors are
// returned as a text result starting with ErrorPrefix and marked IsError.
func (s *Server) Handle(ctx context.Context, name string, args json.RawMessage) *mcp.CallToolResult {
	h, ok := s.handlers[name]
	if !ok {
		return errorResult(crossmcp.Errorf(crossmcp.EUNRECOGNIZED, "unrecognized operation: %s", name))
	}

	payload, err := h(ctx, args)
	if err != nil {
		if crossmcp.ErrorCode(err) == crossmcp.EINTERNAL {
			s.Logger.Error("tool failed", "tool", name, "err", err)
		}
		return errorResult(err)
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		s.Logger.Error("encoding tool result", "tool", name, "err", err)
		return errorResult(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}
}

// errorResult renders err for the client. Internal errors are replaced
// with a generic message.
func errorResult(err error) *mcp.CallToolResult {
	msg := crossmcp.ErrorMessage(err)
	if crossmcp.ErrorCode(err) == crossmcp.EINTERNAL {
		msg = "Internal error."
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: ErrorPrefix + msg}},
		IsError: true,
	}
}
