package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litera-id/litera-backend/pkg/authtoken"
	"github.com/litera-id/litera-backend/pkg/config"
	"github.com/litera-id/litera-backend/pkg/enums"
	"github.com/litera-id/litera-backend/pkg/logger"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret: "middleware-test-secret",
		Issuer: "litera-test",
		TTL:    15 * time.Minute,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, role enums.UserRole) (string, uuid.UUID) {
	t.Helper()

	userID := uuid.New()
	token, err := authtoken.MintAccessToken(cfg, time.Now(), authtoken.AccessTokenPayload{
		UserID:   userID,
		Role:     role,
		Name:     "Test User",
		Username: "tester",
	})
	require.NoError(t, err)
	return token, userID
}

func TestAuthRejectsMissingToken(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := Auth(testJWTConfig(), logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := Auth(testJWTConfig(), logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsTokenFromOtherIssuer(t *testing.T) {
	cfg := testJWTConfig()
	other := cfg
	other.Issuer = "someone-else"
	token, _ := mintTestToken(t, other, enums.UserRoleMember)

	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := Auth(cfg, logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSeedsPrincipal(t *testing.T) {
	cfg := testJWTConfig()
	token, userID := mintTestToken(t, cfg, enums.UserRoleAdmin)

	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	var seenID string
	var seenRole enums.UserRole
	var seenUsername string
	handler := Auth(cfg, logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = UserIDFromContext(r.Context())
		seenRole = RoleFromContext(r.Context())
		seenUsername = UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID.String(), seenID)
	assert.Equal(t, enums.UserRoleAdmin, seenRole)
	assert.Equal(t, "tester", seenUsername)
}

func TestOptionalAuthPassesThroughWithoutToken(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := OptionalAuth(testJWTConfig(), logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthIgnoresInvalidToken(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := OptionalAuth(testJWTConfig(), logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthSeedsPrincipalOnValidToken(t *testing.T) {
	cfg := testJWTConfig()
	token, userID := mintTestToken(t, cfg, enums.UserRoleMember)

	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := OptionalAuth(cfg, logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userID.String(), UserIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := RequireRole(logg, enums.UserRoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/books/9783161484100", nil)
	req = req.WithContext(WithRole(req.Context(), enums.UserRoleAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := RequireRole(logg, enums.UserRoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/books/9783161484100", nil)
	req = req.WithContext(WithRole(req.Context(), enums.UserRoleMember))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestForbidRoleBlocksDeniedRole(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "middleware-test"})
	handler := ForbidRole(logg, enums.UserRoleMember)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventories/adjust", nil)
	req = req.WithContext(WithRole(req.Context(), enums.UserRoleMember))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
