package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server timeouts.
const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Server exposes the MCP endpoint next to health and metrics routes.
type Server struct {
	// MCP serves the streamable MCP transport at /mcp.
	MCP http.Handler

	// Stats reports the document snapshot on /healthz. Optional.
	Stats func() crossmcp.StoreStats

	// Gatherer backs /metrics. The route is omitted when nil.
	Gatherer prometheus.Gatherer

	Logger *slog.Logger

	router chi.Router
}

// NewServer returns a Server routing /mcp to mcpHandler.
func NewServer(mcpHandler http.Handler) *Server {
	return &Server{
		MCP:    mcpHandler,
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Handler builds the router. It is rebuilt on every call so fields may be
// set after NewServer.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	if s.MCP != nil {
		r.Handle("/mcp", s.MCP)
		r.Handle("/mcp/*", s.MCP)
	}
	return r
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is canceled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger().Warn("http shutdown", "err", err)
		}
	}()

	s.logger().Info("http listening", "addr", ln.Addr().String())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		return nil
	}
	return err
}

type healthResponse struct {
	Status      string     `json:"status"`
	Documents   int        `json:"documents"`
	RefreshedAt *time.Time `json:"refreshedAt,omitempty"`
}

// handleHealth reports "ok" once a snapshot holds documents and "empty"
// before that. Both answer 200; the server can take calls either way.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "empty"}
	if s.Stats != nil {
		stats := s.Stats()
		resp.Documents = stats.Documents
		if !stats.RefreshedAt.IsZero() {
			resp.RefreshedAt = &stats.RefreshedAt
		}
	}
	if resp.Documents > 0 {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger().Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
