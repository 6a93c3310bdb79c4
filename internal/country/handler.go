package country

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"regwise/internal/workflow"
	dErrors "regwise/pkg/domain-errors"
	"regwise/pkg/platform/httputil"
	"regwise/pkg/requestcontext"
)

// DirectoryService defines the operations the country handler needs.
type DirectoryService interface {
	List(ctx context.Context) ([]Country, error)
	Onboarding(ctx context.Context, key string) (*workflow.Workflow, error)
	ReplaceOnboarding(ctx context.Context, key string, steps []workflow.Step) (*Country, error)
	Summaries(ctx context.Context, key string) ([]Summary, error)
	Export(ctx context.Context, key string) (*ExportPayload, error)
}

// Handler wires the /api/countries endpoints to the directory service.
type Handler struct {
	service DirectoryService
	logger  *slog.Logger
	auth    func(http.Handler) http.Handler
}

// New constructs the handler. auth guards the mutating onboarding route.
func New(service DirectoryService, logger *slog.Logger, auth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, logger: logger, auth: auth}
}

// Register mounts the country routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/countries", h.handleList)
	r.Get("/api/countries/{code}/onboarding", h.handleOnboarding)
	r.Get("/api/countries/{code}/summaries", h.handleSummaries)
	r.Get("/api/countries/{code}/onboarding/export", h.handleExport)
	r.With(h.auth).Put("/api/countries/{code}/onboarding", h.handleSaveOnboarding)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.List(r.Context())
	if err != nil {
		h.logError(r, "list countries failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, countries)
}

func (h *Handler) handleOnboarding(w http.ResponseWriter, r *http.Request) {
	wf, err := h.service.Onboarding(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.logError(r, "fetch onboarding failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, wf)
}

type saveOnboardingRequest struct {
	Steps *[]workflow.Step `json:"steps"`
}

type saveOnboardingResponse struct {
	Country string          `json:"country"`
	Steps   []workflow.Step `json:"steps"`
}

func (h *Handler) handleSaveOnboarding(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[saveOnboardingRequest](w, r)
	if !ok {
		return
	}
	if req.Steps == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid steps payload"))
		return
	}

	c, err := h.service.ReplaceOnboarding(r.Context(), chi.URLParam(r, "code"), *req.Steps)
	if err != nil {
		h.logError(r, "save onboarding failed", err)
		httputil.WriteError(w, err)
		return
	}

	steps := c.Onboarding
	if steps == nil {
		steps = []workflow.Step{}
	}
	httputil.WriteJSON(w, http.StatusOK, saveOnboardingResponse{Country: c.Name, Steps: steps})
}

func (h *Handler) handleSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.Summaries(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.logError(r, "fetch summaries failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.Export(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.logError(r, "export onboarding failed", err)
		httputil.WriteError(w, err)
		return
	}

	// PDF rendering is not implemented; both formats return the JSON payload,
	// json additionally as a download attachment. Format defaults to json,
	// and the filename always uses the record's code even when the route was
	// hit by name.
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format == "json" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "onboarding-"+payload.Code+".json"))
	}
	httputil.WriteJSON(w, http.StatusOK, payload)
}

func (h *Handler) logError(r *http.Request, msg string, err error) {
	if dErrors.Is(err, dErrors.CodeNotFound) {
		return
	}
	h.logger.ErrorContext(r.Context(), msg,
		"error", err,
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
