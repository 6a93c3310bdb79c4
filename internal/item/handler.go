package item

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "regwise/pkg/domain-errors"
	"regwise/pkg/platform/httputil"
	"regwise/pkg/requestcontext"
)

// CrudService defines the operations the item handler needs.
type CrudService interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, in Input) (*Item, error)
	Update(ctx context.Context, id string, in Input) (*Item, error)
	Delete(ctx context.Context, id string) error
}

// Handler wires the /api/items endpoints to the item service.
type Handler struct {
	service CrudService
	logger  *slog.Logger
	auth    func(http.Handler) http.Handler
}

// New constructs the handler. auth guards every mutating route; reads are
// public.
func New(service CrudService, logger *slog.Logger, auth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, logger: logger, auth: auth}
}

// Register mounts the item routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/items", h.handleList)
	r.Get("/api/items/{id}", h.handleGet)
	r.With(h.auth).Post("/api/items", h.handleCreate)
	r.With(h.auth).Put("/api/items/{id}", h.handleUpdate)
	r.With(h.auth).Delete("/api/items/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logError(r.Context(), "list items failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	it, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logError(r.Context(), "fetch item failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := httputil.Decode[Input](w, r)
	if !ok {
		return
	}

	it, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.logError(r.Context(), "create item failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, it)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	in, ok := httputil.Decode[Input](w, r)
	if !ok {
		return
	}

	it, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.logError(r.Context(), "update item failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logError(r.Context(), "delete item failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeNotFound, dErrors.CodeValidation, dErrors.CodeBadRequest:
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}
