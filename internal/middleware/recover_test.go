package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/DukeRupert/vigil/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery_PanicBecomesInternalError(t *testing.T) {
	mw := NewRecoveryMiddleware(newTestLogger())

	h := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("credentials leaked in panic value")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/inspections", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp handler.JSONError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, domain.EINTERNAL, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "credentials",
		"panic details must never reach the client")
}

func TestRecovery_PassesThroughNormally(t *testing.T) {
	mw := NewRecoveryMiddleware(newTestLogger())

	h := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/inspections", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
