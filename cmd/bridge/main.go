package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/personavault/bridge/internal/command"
	"github.com/personavault/bridge/internal/http/health"
	"github.com/personavault/bridge/internal/http/v1/routes"
	"github.com/personavault/bridge/internal/platform/config"
	applog "github.com/personavault/bridge/internal/platform/logging"
	appmiddleware "github.com/personavault/bridge/internal/platform/middleware"
	"github.com/personavault/bridge/internal/platform/respond"
	"github.com/personavault/bridge/internal/service/backend"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogError(context.Background(), "invalid configuration", err)
		os.Exit(1)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogWarn(context.Background(), "unknown log level, keeping info", zap.String("level", cfg.LogLevel))
	}

	registry := newRegistry(cfg)
	srv := newServer(cfg, newRouter(cfg, registry))

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applog.LogInfo(ctx, "bridge listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("backend", cfg.BackendURL),
		zap.Strings("commands", registry.Names()),
	)
	if err := serve(ctx, srv, ln, cfg.ShutdownTimeout); err != nil {
		applog.LogError(context.Background(), "server error", err)
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

// newRegistry registers every command the UI may invoke.
func newRegistry(cfg config.Config) *command.Registry {
	client := backend.NewClient(&http.Client{}, backend.WithBaseURL(cfg.BackendURL))

	registry := command.NewRegistry()
	registry.MustRegister(backend.CommandName, client.Fetch)
	return registry
}

func newRouter(cfg config.Config, registry *command.Registry) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.AllowedOrigins),
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		// Command invocations carry no body.
		chimiddleware.RequestSize(64<<10),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(registry))

	humaCfg := huma.DefaultConfig("Desktop Bridge API", Version)
	humaCfg.DocsPath = "/api-docs"
	api := humachi.New(router, humaCfg)
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContentTypes)

	routes.Register(api, registry)
	return router
}

// addCBORContentTypes advertises CBOR next to JSON for every request and response body.
func addCBORContentTypes(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

func newServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      60 * time.Second, // backend round-trips have no timeout of their own
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// serve runs srv on ln until ctx is done, then shuts down within timeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
		return err
	}
	return nil
}
