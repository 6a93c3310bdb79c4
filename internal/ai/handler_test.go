package ai

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "regwise/pkg/domain-errors"
)

type stubCompleter struct {
	body []byte
	err  error
}

func (s *stubCompleter) Complete(context.Context, string) ([]byte, error) {
	return s.body, s.err
}

func newTestRouter(client Completer) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	New(client, logger).Register(r)
	return r
}

func TestHandlePrompt(t *testing.T) {
	t.Run("relays upstream response", func(t *testing.T) {
		r := newTestRouter(&stubCompleter{body: []byte(`{"choices":[]}`)})

		req := httptest.NewRequest(http.MethodPost, "/api/ai/prompt",
			strings.NewReader(`{"prompt":"explain AML"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"choices":[]}`, rec.Body.String())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})

	t.Run("missing prompt", func(t *testing.T) {
		r := newTestRouter(&stubCompleter{})

		req := httptest.NewRequest(http.MethodPost, "/api/ai/prompt", strings.NewReader(`{"prompt":"  "}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Prompt is required")
	})

	t.Run("upstream failure maps to 500", func(t *testing.T) {
		r := newTestRouter(&stubCompleter{
			err: dErrors.New(dErrors.CodeUpstream, "AI request failed"),
		})

		req := httptest.NewRequest(http.MethodPost, "/api/ai/prompt",
			strings.NewReader(`{"prompt":"p"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
