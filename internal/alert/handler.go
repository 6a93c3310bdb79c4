package alert

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "regwise/pkg/domain-errors"
	"regwise/pkg/platform/httputil"
	"regwise/pkg/requestcontext"
)

// FeedService defines the operations the alert handler needs.
type FeedService interface {
	List(ctx context.Context, country string) ([]Alert, error)
	MarkRead(ctx context.Context, id string) (*Alert, error)
}

// Handler wires the /api/alerts endpoints to the feed service.
type Handler struct {
	service FeedService
	logger  *slog.Logger
	auth    func(http.Handler) http.Handler
}

//go:generate mockgen -source=handler.go -destination=mocks/feed_mocks.go -package=mocks FeedService

// New constructs the handler. auth guards the mark-read route; listing is
// public.
func New(service FeedService, logger *slog.Logger, auth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, logger: logger, auth: auth}
}

// Register mounts the alert routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/alerts", h.handleList)
	r.With(h.auth).Patch("/api/alerts/{id}/read", h.handleMarkRead)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.service.List(r.Context(), r.URL.Query().Get("country"))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list alerts failed",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, alerts)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(r.Context(), "mark alert read failed",
				"error", err,
				"request_id", requestcontext.RequestID(r.Context()),
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}
