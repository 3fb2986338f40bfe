package validation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizengate/internal/profile"
	"citizengate/pkg/platform/audit"
	"citizengate/pkg/requestcontext"
)

func newTestRouter(t *testing.T, profiles *profile.InMemoryStore) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := NewValidator(profiles, audit.NewPublisher(audit.NewInMemoryStore()), nil, logger)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithUserID(r.Context(), "u-1")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	NewHandler(validator, logger).Register(router)
	return router
}

func TestHandleValidate(t *testing.T) {
	profiles := profile.NewInMemoryStore()
	_, err := profiles.Upsert(context.Background(), "u-1", profile.Profile{
		"full_name": "Ali bin Abu",
		"ic_number": "900101-10-1234",
	})
	require.NoError(t, err)
	router := newTestRouter(t, profiles)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/validate/tax_filing", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var report Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.False(t, report.Valid)
	assert.Equal(t, "tax_filing", report.ServiceType)
	assert.Len(t, report.PresentFields, 2)
	assert.Len(t, report.MissingFields, 3)
}

func TestHandleValidateUnknownService(t *testing.T) {
	router := newTestRouter(t, profile.NewInMemoryStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/validate/dog_license", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "not_found", body["error"])
}
