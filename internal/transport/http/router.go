// Package httptransport assembles the HTTP surface: middleware chain, CORS,
// feature routes, health and metrics endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regwise/internal/platform/metrics"
	"regwise/internal/platform/middleware"
	"regwise/pkg/platform/httputil"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router needs.
type Deps struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	Handlers       []Registrar

	// CacheHealth, when set, is probed by the health endpoint.
	CacheHealth func(ctx context.Context) error
}

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", handleHealth(deps.CacheHealth))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range deps.Handlers {
		h.Register(r)
	}

	return r
}

func handleHealth(cacheHealth func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"ok":   true,
			"time": time.Now().UTC().Format(time.RFC3339),
		}
		if cacheHealth != nil {
			if err := cacheHealth(r.Context()); err != nil {
				body["cache"] = "unavailable"
			} else {
				body["cache"] = "ok"
			}
		}
		httputil.WriteJSON(w, http.StatusOK, body)
	}
}
