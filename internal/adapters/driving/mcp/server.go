package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/propdesk/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// EndpointPath is where the streamable HTTP transport is mounted.
const EndpointPath = "/mcp"

const shutdownTimeout = 5 * time.Second

const instructions = `propdesk holds property listings of four types: Kothi, Flat, Commercial and Plot.
Every listing has sector/phase, CP (channel partner) name, contact number and demand fields;
the type decides which unit fields apply (kothi number, plot number, project/floor/BHK, commercial type/area).
Demands are written in lakh or crore, for example "50 Lakh" or "1.2 crore".
Use search_properties to find listings, get_property for one listing by id and
property_stats for totals. All access is read-only.`

// Server exposes stored property listings over the Model Context Protocol.
type Server struct {
	ports  *Ports
	server *mcp.Server
	now    func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the time source used for relative statistics.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "propdesk", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Debug("MCP server on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP handler: the MCP endpoint at EndpointPath and a
// liveness probe at /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(EndpointPath, mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// RunHTTP listens on addr and serves Handler until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves Handler on ln until ctx is cancelled. Shutdown waits for
// in-flight requests up to a fixed timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Debug("MCP server on http://%s%s", ln.Addr(), EndpointPath)

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
