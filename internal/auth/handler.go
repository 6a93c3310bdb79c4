package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "regwise/pkg/domain-errors"
	"regwise/pkg/platform/httputil"
	"regwise/pkg/requestcontext"
)

// AccountService defines the operations the auth handler needs.
type AccountService interface {
	Register(ctx context.Context, creds Credentials) (*Session, error)
	Login(ctx context.Context, creds Credentials) (*Session, error)
	Me(ctx context.Context, userID string) (*User, error)
}

// Handler wires the auth endpoints to the account service.
type Handler struct {
	service AccountService
	logger  *slog.Logger
	auth    func(http.Handler) http.Handler
}

// New constructs the handler. auth guards the profile route; register and
// login are public by definition.
func New(service AccountService, logger *slog.Logger, auth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, logger: logger, auth: auth}
}

// Register mounts the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/auth/register", h.handleRegister)
	r.Post("/api/auth/login", h.handleLogin)
	r.With(h.auth).Get("/api/users/me", h.handleMe)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := httputil.Decode[Credentials](w, r)
	if !ok {
		return
	}

	session, err := h.service.Register(r.Context(), creds)
	if err != nil {
		h.logError(r.Context(), "register failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := httputil.Decode[Credentials](w, r)
	if !ok {
		return
	}

	session, err := h.service.Login(r.Context(), creds)
	if err != nil {
		h.logError(r.Context(), "login failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Me(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		h.logError(r.Context(), "fetch profile failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

// logError records server-side failures. Expected client errors, bad
// credentials and validation misses, are not worth a log line.
func (h *Handler) logError(ctx context.Context, msg string, err error) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeBadRequest, dErrors.CodeValidation, dErrors.CodeNotFound, dErrors.CodeUnauthorized:
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
}
