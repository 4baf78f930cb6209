package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/utils"
)

func sessionRequest(t *testing.T, userID, role string) *http.Request {
	t.Helper()
	token, err := utils.GenerateJWT(userID, role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	return req
}

func TestAuthMiddlewareAttachesClaimsFromCookie(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	var got *utils.Claims
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromRequest(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, sessionRequest(t, "6512bd43d9caa6e02c990b0a", "user"))

	require.NotNil(t, got)
	assert.Equal(t, "6512bd43d9caa6e02c990b0a", got.UserID)
	assert.Equal(t, "user", got.Role)
}

func TestAuthMiddlewareAcceptsBearerHeader(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	token, err := utils.GenerateJWT("6512bd43d9caa6e02c990b0a", "user")
	require.NoError(t, err)

	var ok bool
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok = ClaimsFromRequest(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=shoes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, ok)
}

func TestAuthMiddlewarePassesThroughWithoutToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	called := false
	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := ClaimsFromRequest(r)
		assert.False(t, ok)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.True(t, called)
}

func TestAuthMiddlewareIgnoresInvalidToken(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ClaimsFromRequest(r)
		assert.False(t, ok)
	}))

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tampered"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireUserRedirectsAnonymous(t *testing.T) {
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/home", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireUserPassesAuthenticated(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	called := false
	handler := AuthMiddleware(RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	handler.ServeHTTP(httptest.NewRecorder(), sessionRequest(t, "6512bd43d9caa6e02c990b0a", "user"))
	assert.True(t, called)
}

func TestRequireAdminForbidsNonAdmin(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	handler := AuthMiddleware(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, sessionRequest(t, "6512bd43d9caa6e02c990b0a", "user"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	utils.JwtKey = []byte("test-secret")

	called := false
	handler := AuthMiddleware(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	handler.ServeHTTP(httptest.NewRecorder(), sessionRequest(t, "6512bd43d9caa6e02c990b0a", "admin"))
	assert.True(t, called)
}

func TestRequireAdminRedirectsAnonymous(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
