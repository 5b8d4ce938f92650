// Package transport serves the MCP server over one of two streaming
// protocols. Both variants share a single lifecycle contract and the
// same router/middleware chain; only the mounted protocol handler
// differs.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/dionysio/spendee-go/internal/config"
	"github.com/dionysio/spendee-go/internal/middleware"
)

// Server is the single lifecycle contract for both transports.
type Server interface {
	Name() string
	Start() error
	Shutdown(ctx context.Context) error
}

type httpTransport struct {
	name string
	srv  *http.Server
}

// New builds the transport selected by the config: SSE or streamable
// HTTP, each mounted behind the shared middleware chain.
func New(cfg *config.Config, mcp *mcpserver.MCPServer, log *slog.Logger) Server {
	var (
		name    string
		handler http.Handler
	)
	switch cfg.Transport {
	case config.TransportStreamHTTP:
		name = string(config.TransportStreamHTTP)
		handler = mcpserver.NewStreamableHTTPServer(mcp)
	default:
		name = string(config.TransportSSE)
		handler = mcpserver.NewSSEServer(mcp)
	}

	return &httpTransport{
		name: name,
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: newRouter(cfg, log, handler),
		},
	}
}

func newRouter(cfg *config.Config, log *slog.Logger, handler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(log).LoggerMiddleware)
	if !cfg.DisableAuth {
		r.Use(middleware.NewMiddleware(cfg.MCPToken).BearerAuth)
	}
	r.Mount("/", handler)
	return r
}

func (t *httpTransport) Name() string { return t.name }

func (t *httpTransport) Start() error {
	if err := t.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (t *httpTransport) Shutdown(ctx context.Context) error {
	return t.srv.Shutdown(ctx)
}
