package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"nutriTrackAPI/middleware"
)

func requestWithIdentity(t *testing.T, userID uuid.UUID, pathID string) *http.Request {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/users/"+pathID, nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	return mux.SetURLVars(req, map[string]string{"userID": pathID})
}

func TestAuthorizedPathUserMatch(t *testing.T) {
	userID := uuid.New()
	rec := httptest.NewRecorder()

	got, ok := authorizedPathUser(rec, requestWithIdentity(t, userID, userID.String()))

	assert.True(t, ok)
	assert.Equal(t, userID, got)
	assert.Empty(t, rec.Body.String(), "no error response on success")
}

func TestAuthorizedPathUserMismatchIsForbidden(t *testing.T) {
	rec := httptest.NewRecorder()

	_, ok := authorizedPathUser(rec, requestWithIdentity(t, uuid.New(), uuid.New().String()))

	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error": "Access denied"}`, rec.Body.String())
}

func TestAuthorizedPathUserMalformedID(t *testing.T) {
	rec := httptest.NewRecorder()

	_, ok := authorizedPathUser(rec, requestWithIdentity(t, uuid.New(), "not-a-uuid"))

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthorizedPathUserMissingIdentity(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/users/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"userID": uuid.NewString()})
	rec := httptest.NewRecorder()

	_, ok := authorizedPathUser(rec, req)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
