package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-booking-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func requestWithRole(roleID int) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func TestRequireRoleAllows(t *testing.T) {
	called := false
	handler := RequireRole(entity.RoleIDDoctor, entity.RoleIDAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole(entity.RoleIDDoctor))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbids(t *testing.T) {
	called := false
	handler := RequireRole(entity.RoleIDAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole(entity.RoleIDPatient))

	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleWithoutContext(t *testing.T) {
	handler := RequireRole(entity.RoleIDAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContextAccessors(t *testing.T) {
	req := requestWithRole(entity.RoleIDAssistant)

	roleID, ok := GetRoleIDFromContext(req.Context())
	assert.True(t, ok)
	assert.Equal(t, entity.RoleIDAssistant, roleID)

	_, ok = GetUserIDFromContext(req.Context())
	assert.False(t, ok)
}
