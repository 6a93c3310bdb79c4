package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	platformredis "regwise/internal/platform/redis"
	"regwise/pkg/platform/httputil"
	"regwise/pkg/requestcontext"
)

const cacheKey = "regwise:dashboard"

// MetricsService defines the operation the dashboard handler needs.
type MetricsService interface {
	Snapshot(ctx context.Context) (*Metrics, error)
}

// Handler wires GET /api/dashboard/metrics to the aggregator, with an
// optional short-TTL Redis cache in front of the fan-out.
type Handler struct {
	service  MetricsService
	logger   *slog.Logger
	redis    *platformredis.Client
	cacheTTL time.Duration
}

func New(service MetricsService, logger *slog.Logger, redis *platformredis.Client, cacheTTL time.Duration) *Handler {
	return &Handler{service: service, logger: logger, redis: redis, cacheTTL: cacheTTL}
}

// Register mounts the dashboard route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/dashboard/metrics", h.handleMetrics)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.redis != nil {
		if cached, err := h.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var m Metrics
			if err := json.Unmarshal(cached, &m); err == nil {
				httputil.WriteJSON(w, http.StatusOK, &m)
				return
			}
		}
	}

	m, err := h.service.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dashboard snapshot failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	if h.redis != nil {
		if payload, err := json.Marshal(m); err == nil {
			if err := h.redis.Set(ctx, cacheKey, payload, h.cacheTTL).Err(); err != nil {
				h.logger.WarnContext(ctx, "dashboard cache write failed", "error", err)
			}
		}
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}
