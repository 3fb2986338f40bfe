// Package httptransport assembles the public router. Handlers register
// themselves; this package owns only the middleware chain and the
// operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"citizengate/internal/platform/metrics"
	"citizengate/internal/platform/middleware"
	"citizengate/internal/platform/ratelimit"
	"citizengate/pkg/platform/httputil"
	"citizengate/pkg/platform/middleware/metadata"
	"citizengate/pkg/platform/middleware/requesttime"
)

// Registrar is anything that mounts routes on the router.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck probes one backend. Name appears in the health payload.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps carries everything the router needs.
type Deps struct {
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	JWTSigningKey string
	RateLimiter   *ratelimit.Limiter
	Handlers      []Registrar
	HealthChecks  []HealthCheck
}

// NewRouter builds the chi router with the full middleware chain.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(ratelimit.Middleware(deps.RateLimiter))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.ResolveUser(deps.JWTSigningKey, deps.Logger))

	for _, h := range deps.Handlers {
		h.Register(r)
	}

	r.Get("/health", handleHealth(deps.HealthChecks))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealth(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		backends := make(map[string]string, len(checks))
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				backends[c.Name] = "unhealthy"
				status = http.StatusServiceUnavailable
			} else {
				backends[c.Name] = "ok"
			}
		}
		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(backends) > 0 {
			body["backends"] = backends
		}
		httputil.WriteJSON(w, status, body)
	}
}
