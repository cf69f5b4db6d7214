package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medikart/backoffice/internal/backoffice/models"
	"github.com/medikart/backoffice/internal/backoffice/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	repository.Repository
	staff *models.Staff
}

func (s *stubRepo) GetStaffByID(ctx context.Context, id int64) (*models.Staff, error) {
	if s.staff != nil && s.staff.ID == id {
		return s.staff, nil
	}
	return nil, nil
}

func TestAuthMiddleware(t *testing.T) {
	secret := "test-secret"
	repo := &stubRepo{staff: &models.Staff{ID: 7, Login: "asha", Role: models.RoleAdmin}}

	token, err := GenerateToken(7, models.RoleAdmin, secret)
	require.NoError(t, err)

	var gotID int64
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetStaffID(r.Context())
		gotRole, _ = GetStaffRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthMiddleware(&JWTConfig{SecretKey: secret, Repo: repo})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

func TestAuthMiddlewareFromCookie(t *testing.T) {
	secret := "test-secret"
	repo := &stubRepo{staff: &models.Staff{ID: 7, Role: models.RoleStaff}}

	token, err := GenerateToken(7, models.RoleStaff, secret)
	require.NoError(t, err)

	handler := AuthMiddleware(&JWTConfig{SecretKey: secret, Repo: repo})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	secret := "test-secret"
	repo := &stubRepo{staff: &models.Staff{ID: 7, Role: models.RoleStaff}}
	handler := AuthMiddleware(&JWTConfig{SecretKey: secret, Repo: repo})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not run")
		}))

	// No token
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Token signed with the wrong secret
	badToken, err := GenerateToken(7, models.RoleStaff, "other-secret")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+badToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown staff id
	unknownToken, err := GenerateToken(99, models.RoleStaff, secret)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+unknownToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/loyalty/programs", nil)
	ctx := context.WithValue(req.Context(), StaffRoleKey, models.RoleStaff)
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ctx = context.WithValue(req.Context(), StaffRoleKey, models.RoleAdmin)
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}
