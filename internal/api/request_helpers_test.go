package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/api/shared"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetPathUUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id.String())
	got, err := getPathUUID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	req = withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "not-a-uuid")
	_, err = getPathUUID(req, "id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = getPathUUID(httptest.NewRequest(http.MethodGet, "/", nil), "id")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHandleUserIDAndPathUUID(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)
	userID, planID := uuid.New(), uuid.New()

	t.Run("both present", func(t *testing.T) {
		t.Parallel()
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", planID.String())
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()

		gotUser, gotID, ok := handleUserIDAndPathUUID(rec, req, "id", log)
		require.True(t, ok)
		assert.Equal(t, userID, gotUser)
		assert.Equal(t, planID, gotID)
	})

	t.Run("no user", func(t *testing.T) {
		t.Parallel()
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", planID.String())
		rec := httptest.NewRecorder()

		_, _, ok := handleUserIDAndPathUUID(rec, req, "id", log)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad path id", func(t *testing.T) {
		t.Parallel()
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "42")
		req = req.WithContext(shared.WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()

		_, _, ok := handleUserIDAndPathUUID(rec, req, "id", log)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid id: has invalid format")
	})
}

func TestRequestLanguage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?language=ar", nil)
	req.Header.Set("Accept-Language", "en-US")
	assert.Equal(t, domain.LanguageEnglish, requestLanguage(req, "en"))
	assert.Equal(t, domain.LanguageArabic, requestLanguage(req, ""))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ar-EG")
	assert.Equal(t, domain.LanguageArabic, requestLanguage(req, ""))

	assert.Equal(t, domain.LanguageEnglish, requestLanguage(httptest.NewRequest(http.MethodGet, "/", nil), ""))
}
