package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vpetrakov/webshop/internal/auth"
	"github.com/vpetrakov/webshop/internal/event"
	"github.com/vpetrakov/webshop/internal/handlers"
	"github.com/vpetrakov/webshop/internal/models"
	"github.com/vpetrakov/webshop/internal/repo"
	"github.com/vpetrakov/webshop/internal/service"
	httpserver "github.com/vpetrakov/webshop/internal/transport/http"
)

const adminEmail = "admin@example.com"

type testEnv struct {
	T   *testing.T
	E   *echo.Echo
	DB  *gorm.DB
	Pub *event.MemoryPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.RefreshToken{},
	))

	store := repo.New(db)
	pub := event.NewMemoryPublisher()
	tokens := &auth.TokenService{
		Repo:          store,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		Tokens:         tokens,
		PageHandler:    &handlers.PageHandler{},
		AuthHandler:    &handlers.AuthHandler{Auth: &service.AuthService{Repo: store, Publisher: pub, AdminEmail: adminEmail}, Tokens: tokens},
		ProductHandler: &handlers.ProductHandler{Catalog: &service.CatalogService{Repo: store, Publisher: pub}},
		CartHandler:    &handlers.CartHandler{Cart: &service.CartService{Repo: store, Publisher: pub}},
	})

	return &testEnv{T: t, E: e, DB: db, Pub: pub}
}

func (env *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(env.T, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func sessionCookies(t *testing.T, rec *httptest.ResponseRecorder) []*http.Cookie {
	t.Helper()
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookies on response")
	return cookies
}

// register signs up a user through the HTTP surface and returns the session.
func (env *testEnv) register(email, name string) []*http.Cookie {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/register", map[string]string{
		"email":    email,
		"password": "password",
		"name":     name,
	})
	require.Equal(env.T, http.StatusCreated, rec.Code)
	return sessionCookies(env.T, rec)
}

func (env *testEnv) createProduct(name string, price float64) *models.Product {
	env.T.Helper()
	prod := &models.Product{Name: name, Description: "d", Price: price}
	require.NoError(env.T, env.DB.Create(prod).Error)
	return prod
}
