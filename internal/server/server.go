// Package server exposes the Notion API gateway as MCP tools. Tool handlers
// are thin shims: they pull arguments out of the request, build a per-tenant
// gateway client, make exactly one upstream call, and hand the result to the
// renderer. All error classification happens in the gateway; all formatting
// happens in the renderer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lox/notion-mcp/internal/config"
	"github.com/lox/notion-mcp/internal/notion"
)

type Server struct {
	cfg      config.Config
	logger   hclog.Logger
	mcp      *server.MCPServer
	handlers map[string]server.ToolHandlerFunc
}

func New(cfg config.Config, logger hclog.Logger, version string) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: make(map[string]server.ToolHandlerFunc),
		mcp: server.NewMCPServer(
			"notion-mcp",
			version,
			server.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.handlers[tool.Name] = handler
	s.mcp.AddTool(tool, handler)
}

// CallLocal invokes a registered tool handler directly, bypassing transport.
// The CLI uses this to exercise tools against the real API.
func (s *Server) CallLocal(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return handler(ctx, req)
}

// ServeStdio runs the server over stdin/stdout until ctx is cancelled. In
// this mode every request shares the configured token (single tenant).
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio")
	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// ServeHTTP runs the streamable HTTP transport on addr. Each request carries
// its own tenant token, extracted from headers into the request context.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	streamable := server.NewStreamableHTTPServer(
		s.mcp,
		server.WithHTTPContextFunc(tenantTokenFromRequest),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server", "transport", "http", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error shutting down HTTP server", "error", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// clientFor builds a fresh per-request gateway client. The token comes from
// the request context in HTTP mode, or the config in stdio mode. Clients are
// never reused across requests or tenants.
func (s *Server) clientFor(ctx context.Context) *notion.Client {
	token := TokenFromContext(ctx)
	if token == "" {
		token = s.cfg.API.Token
	}
	return notion.NewClient(s.cfg.API, token)
}
