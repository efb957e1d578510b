package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpetrakov/webshop/internal/models"
)

func TestRegisterEstablishesSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/register", map[string]string{
		"email":    "alice@example.com",
		"password": "password",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotZero(t, user.ID)

	names := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		names[ck.Name] = true
	}
	assert.True(t, names["accessToken"])
	assert.True(t, names["refreshToken"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice@example.com", "Alice")

	rec := env.do(http.MethodPost, "/register", map[string]string{
		"email":    "alice@example.com",
		"password": "other",
		"name":     "Impostor",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	require.NoError(t, env.DB.Model(&models.User{}).
		Where("email = ?", "alice@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count, "no second user row on duplicate registration")
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/register", map[string]string{
		"email":    "not-an-email",
		"password": "password",
		"name":     "A",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register("alice@example.com", "Alice")

	rec := env.do(http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	sessionCookies(t, rec)

	rec = env.do(http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "no session on failed login")

	rec = env.do(http.MethodPost, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register("alice@example.com", "Alice")

	rec := env.do(http.MethodGet, "/logout", nil, cookies...)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	for _, ck := range rec.Result().Cookies() {
		assert.Empty(t, ck.Value, "cookie %s must be cleared", ck.Name)
	}

	// second logout without a session redirects to login, nothing breaks
	rec = env.do(http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLogoutWithOnlyRefreshCookie(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.register("alice@example.com", "Alice")

	var refresh *http.Cookie
	for _, ck := range cookies {
		if ck.Name == "refreshToken" {
			refresh = ck
		}
	}
	require.NotNil(t, refresh)

	// the access cookie is gone (expired browser-side); the guard rotates the
	// session before the logout handler runs
	rec := env.do(http.MethodGet, "/logout", nil, refresh)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var live int64
	require.NoError(t, env.DB.Model(&models.RefreshToken{}).
		Where("revoked = ?", false).Count(&live).Error)
	assert.Zero(t, live, "logout must invalidate the rotated session too")
}

func TestIndexRedirectsAuthenticated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := env.register("alice@example.com", "Alice")
	rec = env.do(http.MethodGet, "/", nil, cookies...)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/products", rec.Header().Get("Location"))
}

func TestFormEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/register", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/login", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
