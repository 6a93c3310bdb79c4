package search

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regwise/internal/appstate"
)

func newTestRouter(state *appstate.State) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(&stubResolver{names: map[string]string{"SG": "Singapore"}}, &stubAudit{})
	r := chi.NewRouter()
	New(svc, logger, state).Register(r)
	return r
}

func TestHandleSearch(t *testing.T) {
	state := appstate.New()
	r := newTestRouter(state)

	req := httptest.NewRequest(http.MethodPost, "/api/search",
		strings.NewReader(`{"country":"SG","query":"licensing"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"country":"Singapore"`)

	history := state.SearchHistory()
	require.Len(t, history, 1)
	assert.Equal(t, "licensing", history[0].Query)
	assert.Equal(t, "Singapore", history[0].Country)
}

func TestHandleSearchEmptyQuery(t *testing.T) {
	state := appstate.New()
	r := newTestRouter(state)

	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"country":"SG"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Failed searches never reach the history.
	assert.Empty(t, state.SearchHistory())
}
