package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/navigation/pkg/app"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Service *app.Service
	Name    string
	Version string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

const (
	defaultListenAddr = "127.0.0.1:8080"
	defaultPath       = "/mcp"
	shutdownTimeout   = 5 * time.Second
)

// Do serves the profile tools until ctx is done or the transport fails.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a service")
	}
	logger := r.Service.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := NewService(r.Service)
	defer svc.Close()
	srv := r.newServer(svc)

	logger.Info("mcp server starting", zap.String("transport", string(r.Transport)), zap.Stringer("mode", r.Service.Mode))
	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, logger)
	case TransportStdio:
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", r.Transport)
	}
}

func (r Runner) newServer(svc *Service) *server.MCPServer {
	name, version := r.Name, r.Version
	if name == "" {
		name = "navigation"
	}
	if version == "" {
		version = "dev"
	}
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Load user profiles, read their posts and change their status. Call load_profile before reading posts."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// endpoint resolves the listen address and the MCP path, and checks the TLS
// pair is complete.
func (r Runner) endpoint() (addr, path string, err error) {
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return "", "", errors.New("both http tls cert and key must be provided")
	}
	addr = r.HTTPListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}
	path = r.HTTPEndpointPath
	switch {
	case path == "":
		path = defaultPath
	case !strings.HasPrefix(path, "/"):
		path = "/" + path
	}
	return addr, path, nil
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, logger *zap.Logger) error {
	addr, path, err := r.endpoint()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Info("mcp http listening", zap.Stringer("addr", ln.Addr()), zap.String("path", path))
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp http shutdown", zap.Error(err))
		}
	})
	defer stop()

	if r.HTTPServerCert != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
