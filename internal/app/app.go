package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/caseledger-backend/internal/auth"
	"github.com/heartmarshall/caseledger-backend/internal/config"
	"github.com/heartmarshall/caseledger-backend/internal/metrics"
	"github.com/heartmarshall/caseledger-backend/internal/telemetry"
	"github.com/heartmarshall/caseledger-backend/internal/transport/middleware"
	"github.com/heartmarshall/caseledger-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, wires the
// application and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	return a.Serve(ctx)
}

// App is the wired HTTP application.
type App struct {
	cfg             *config.Config
	log             *slog.Logger
	backend         *Backend
	handler         http.Handler
	limiter         *middleware.RateLimiter
	shutdownTracing func(context.Context) error
}

// New builds the application from cfg without starting the listener.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}

	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
		gatherer = reg
	}

	backend, err := OpenBackend(ctx, cfg, logger, m)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}

	a := &App{
		cfg:             cfg,
		log:             logger,
		backend:         backend,
		shutdownTracing: shutdownTracing,
	}
	if cfg.RateLimit.RequestsPerMinute > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	}

	a.handler = rest.NewRouter(rest.RouterConfig{
		Logger:      logger,
		Tokens:      auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		Health:      rest.NewHealthHandler(backend.Store, backend.Driver, BuildVersion()),
		Cases:       rest.NewCaseHandler(backend.Cases, logger),
		Compliance:  rest.NewComplianceHandler(backend.Compliance, logger),
		Users:       rest.NewUserHandler(backend.Users, logger),
		Metrics:     m,
		Gatherer:    gatherer,
		MetricsPath: cfg.Metrics.Path,
		CORS:        cfg.CORS,
		RateLimiter: a.limiter,
		RateLimit:   cfg.RateLimit.RequestsPerMinute,
	})

	return a, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Serve listens on the configured address until ctx is cancelled, then
// drains in-flight requests within the shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       a.cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(a.log.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("http server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close stops background work and releases storage.
func (a *App) Close(ctx context.Context) {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	a.backend.Close()
	if err := a.shutdownTracing(ctx); err != nil {
		a.log.Error("shutdown tracing", slog.String("error", err.Error()))
	}
}
