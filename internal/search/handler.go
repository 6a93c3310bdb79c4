package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"regwise/internal/appstate"
	"regwise/pkg/platform/httputil"
	"regwise/pkg/requestcontext"
)

// SearchService defines the operation the search handler needs.
type SearchService interface {
	Search(ctx context.Context, country, query string) (*Result, error)
}

// Handler wires POST /api/search to the search service.
type Handler struct {
	service  SearchService
	logger   *slog.Logger
	appState *appstate.State
}

func New(service SearchService, logger *slog.Logger, appState *appstate.State) *Handler {
	return &Handler{service: service, logger: logger, appState: appState}
}

// Register mounts the search route.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/search", h.handleSearch)
}

type searchRequest struct {
	Country string `json:"country"`
	Query   string `json:"query"`
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[searchRequest](w, r)
	if !ok {
		return
	}

	result, err := h.service.Search(r.Context(), req.Country, req.Query)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if h.appState != nil {
		h.appState.AddSearch(req.Query, result.Country)
	}
	h.logger.InfoContext(r.Context(), "search served",
		"country", result.Country,
		"request_id", requestcontext.RequestID(r.Context()),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}
