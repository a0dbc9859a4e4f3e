package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/caseledger-backend/internal/config"
	"github.com/heartmarshall/caseledger-backend/internal/domain"
	"github.com/heartmarshall/caseledger-backend/internal/metrics"
	"github.com/heartmarshall/caseledger-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// RouterConfig collects everything the HTTP surface is built from.
// Nil Users, Gatherer or RateLimiter disable the matching routes or middleware.
type RouterConfig struct {
	Logger      *slog.Logger
	Tokens      tokenValidator
	Health      *HealthHandler
	Cases       *CaseHandler
	Compliance  *ComplianceHandler
	Users       *UserHandler
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	MetricsPath string
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter
	RateLimit   int
}

// NewRouter builds the chi router with the middleware stack, probes,
// metrics exposition and the /api routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Recovery(cfg.Logger),
		middleware.Logger(cfg.Logger),
		middleware.Metrics(cfg.Metrics),
		middleware.CORS(cfg.CORS),
	}
	if cfg.RateLimiter != nil && cfg.RateLimit > 0 {
		stack = append(stack, cfg.RateLimiter.Limit(cfg.RateLimit))
	}
	r.Use(stack...)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, domain.CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, domain.CodeValidation, "method not allowed")
	})

	cfg.Health.Register(r)
	if cfg.Gatherer != nil && cfg.MetricsPath != "" {
		r.Method(http.MethodGet, cfg.MetricsPath, promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Tokens, cfg.Logger))
		cfg.Cases.Register(r)
		cfg.Compliance.Register(r)
		if cfg.Users != nil {
			cfg.Users.Register(r)
		}
	})

	return r
}
