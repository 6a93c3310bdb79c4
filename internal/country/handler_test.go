package country

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

	"regwise/internal/workflow"
)

func newTestRouter(t *testing.T) (chi.Router, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(store, logger, &stubAudit{})
	allow := func(next http.Handler) http.Handler { return next }
	r := chi.NewRouter()
	New(svc, logger, allow).Register(r)
	return r, store
}

func seedRouter(t *testing.T, r chi.Router, store *MemoryStore) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), Country{
		Code: "US", Name: "United States", Region: "North America",
		Workflow: &workflow.Spec{
			KYCSteps:  []string{"Collect CIP data", "Verify identity"},
			Documents: []string{"Photo ID"},
		},
	}))
}

func TestHandleListCountries(t *testing.T) {
	r, store := newTestRouter(t)
	seedRouter(t, r, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"US"`)
}

func TestHandleOnboarding(t *testing.T) {
	r, store := newTestRouter(t)
	seedRouter(t, r, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/US/onboarding", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"id":"US-kyc-1"`)
	assert.Contains(t, body, `"id":"US-docs-1"`)
	assert.Contains(t, body, `"complianceLevel":"Standard"`)
}

func TestHandleOnboardingUnknownCountry(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/ZZ/onboarding", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Country not found")
}

func TestHandleSaveOnboardingRoundTrip(t *testing.T) {
	r, store := newTestRouter(t)
	seedRouter(t, r, store)

	payload := `{"steps":[{"id":"US-kyc-1","stepNumber":1,"title":"Custom step","description":"edited","required":true,"documents":[],"conditions":[]}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/countries/US/onboarding", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"country":"United States"`)

	// Stored steps now take precedence over derivation.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/US/onboarding", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Custom step")
	assert.NotContains(t, rec.Body.String(), "Collect CIP data")
}

func TestHandleSaveOnboardingRejectsMissingSteps(t *testing.T) {
	r, store := newTestRouter(t)
	seedRouter(t, r, store)

	req := httptest.NewRequest(http.MethodPut, "/api/countries/US/onboarding", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid steps payload")
}

func TestHandleSummaries(t *testing.T) {
	r, store := newTestRouter(t)
	seedRouter(t, r, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/US/summaries", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"id":"US-aml"`)
	assert.Contains(t, body, `"id":"US-kyc"`)
}

func TestHandleExport(t *testing.T) {
	r, store := newTestRouter(t)
	seedRouter(t, r, store)

	t.Run("default format downloads json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/US/onboarding/export", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "onboarding-US.json")
		assert.Contains(t, rec.Body.String(), `"country":"United States"`)
	})

	t.Run("json download", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/US/onboarding/export?format=json", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "onboarding-US.json")
	})

	t.Run("by-name lookup names the file by code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/United%20States/onboarding/export", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "onboarding-US.json")
	})

	t.Run("pdf falls back to inline json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countries/US/onboarding/export?format=pdf", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
		assert.Contains(t, rec.Body.String(), `"country":"United States"`)
	})
}
