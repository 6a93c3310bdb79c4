// Package upload stores user-submitted files on disk and serves them back.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"regwise/internal/audit"
	dErrors "regwise/pkg/domain-errors"
	"regwise/pkg/platform/httputil"
	"regwise/pkg/requestcontext"
)

// AuditRecorder records completed uploads. Emit never blocks.
type AuditRecorder interface {
	Emit(ctx context.Context, action, subject string)
}

// Handler accepts multipart uploads into a single directory.
type Handler struct {
	dir      string
	maxBytes int64
	logger   *slog.Logger
	audit    AuditRecorder

	// now is swappable in tests; stored names are millisecond timestamps.
	now func() time.Time
}

// Response is the upload result payload.
type Response struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

func New(dir string, maxBytes int64, logger *slog.Logger, audit AuditRecorder) *Handler {
	return &Handler{
		dir:      dir,
		maxBytes: maxBytes,
		logger:   logger,
		audit:    audit,
		now:      time.Now,
	}
}

// Register mounts the upload route and the static file route that serves the
// stored files back.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/upload", h.handleUpload)
	r.Get("/uploads/*", h.handleServe)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "No file uploaded"))
		return
	}
	defer file.Close()

	name := fmt.Sprintf("%d%s", h.now().UnixMilli(), filepath.Ext(header.Filename))
	if err := h.store(file, name); err != nil {
		h.logger.ErrorContext(r.Context(), "store upload failed",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store file"))
		return
	}

	h.audit.Emit(r.Context(), audit.ActionFileUploaded, name)

	httputil.WriteJSON(w, http.StatusCreated, Response{
		Filename: name,
		Path:     "/uploads/" + name,
	})
}

func (h *Handler) store(src io.Reader, name string) error {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (h *Handler) handleServe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	// filepath.Base strips any traversal a crafted path could smuggle in.
	http.ServeFile(w, r, filepath.Join(h.dir, filepath.Base(name)))
}
