package ai

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "regwise/pkg/domain-errors"
	"regwise/pkg/platform/httputil"
	"regwise/pkg/requestcontext"
)

// Completer produces a raw completion response for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) ([]byte, error)
}

// Handler exposes the prompt proxy endpoint.
type Handler struct {
	client Completer
	logger *slog.Logger
}

func New(client Completer, logger *slog.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// Register mounts the AI routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/ai/prompt", h.handlePrompt)
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) handlePrompt(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[promptRequest](w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Prompt is required"))
		return
	}

	body, err := h.client.Complete(r.Context(), req.Prompt)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "ai completion failed",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, err)
		return
	}

	// The upstream body is already JSON; relay it without re-encoding.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
