package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vpetrakov/webshop/internal/models"
	"github.com/vpetrakov/webshop/internal/repo"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"

	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour

	// sessionTokenKey holds the refresh token issued during this request, so
	// that a logout in the same request can revoke a token the cookies do not
	// carry yet.
	sessionTokenKey = "sessionRefreshToken"
)

type TokenService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SignAccessToken carries the full identity in the claims so that resolving
// the caller of a request needs no database round trip.
func (t *TokenService) SignAccessToken(u *models.User) (string, time.Time, error) {
	exp := time.Now().Add(accessTTL)
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"name":  u.Name,
		"adm":   u.IsAdmin,
		"exp":   exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.JWTSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// SignRefreshToken includes a fresh jti so that two tokens for the same user
// never collide on the stored unique token column.
func (t *TokenService) SignRefreshToken(userID uint) (string, time.Time, error) {
	exp := time.Now().Add(refreshTTL)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"typ": "refresh",
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.RefreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// EstablishSession signs both tokens for the user, persists the refresh token
// and sets the session cookies on the response.
func (t *TokenService) EstablishSession(c echo.Context, u *models.User) error {
	access, accessExp, err := t.SignAccessToken(u)
	if err != nil {
		return fmt.Errorf("sign access token: %w", err)
	}
	refresh, refreshExp, err := t.SignRefreshToken(u.ID)
	if err != nil {
		return fmt.Errorf("sign refresh token: %w", err)
	}
	if err := t.Repo.SaveRefreshToken(c.Request().Context(), refresh, u.ID, refreshExp); err != nil {
		return err
	}

	c.SetCookie(CreateCookie(AccessCookie, access, "/", accessExp))
	c.SetCookie(CreateCookie(RefreshCookie, refresh, "/", refreshExp))
	c.Set(sessionTokenKey, refresh)
	return nil
}

// ClearSession revokes the refresh token when present and expires both
// cookies. A token rotated earlier in the same request lives on the context,
// not in the request cookies, so both places are checked. Safe to call
// without a session.
func (t *TokenService) ClearSession(c echo.Context) error {
	if ck, err := c.Cookie(RefreshCookie); err == nil && ck.Value != "" {
		if err := t.Repo.RevokeRefreshToken(c.Request().Context(), ck.Value); err != nil {
			return err
		}
	}
	if v, ok := c.Get(sessionTokenKey).(string); ok && v != "" {
		if err := t.Repo.RevokeRefreshToken(c.Request().Context(), v); err != nil {
			return err
		}
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(AccessCookie, "", "/", expired))
	c.SetCookie(CreateCookie(RefreshCookie, "", "/", expired))
	return nil
}

// CurrentIdentity resolves the caller from the access cookie alone. Invalid,
// expired or missing tokens yield the anonymous identity; this never touches
// the database.
func (t *TokenService) CurrentIdentity(c echo.Context) Identity {
	ck, err := c.Cookie(AccessCookie)
	if err != nil || ck.Value == "" {
		return Identity{}
	}

	token, err := jwt.Parse(ck.Value, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}
	}
	id, err := identityFromClaims(claims)
	if err != nil {
		return Identity{}
	}
	return id
}

// refreshIdentity rotates an expired session off the refresh cookie: the
// stored token must be present, unexpired and not revoked. On success new
// cookies are set and the fresh identity returned.
func (t *TokenService) refreshIdentity(c echo.Context) (Identity, bool) {
	ck, err := c.Cookie(RefreshCookie)
	if err != nil || ck.Value == "" {
		return Identity{}, false
	}

	token, err := jwt.Parse(ck.Value, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.RefreshSecret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, false
	}
	if typ, ok := claims["typ"].(string); !ok || typ != "refresh" {
		return Identity{}, false
	}

	ctx := c.Request().Context()
	valid, err := t.Repo.RefreshTokenValid(ctx, ck.Value)
	if err != nil || !valid {
		return Identity{}, false
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return Identity{}, false
	}
	user, err := t.Repo.UserByID(ctx, uint(sub))
	if err != nil {
		return Identity{}, false
	}

	if err := t.Repo.RevokeRefreshToken(ctx, ck.Value); err != nil {
		return Identity{}, false
	}
	if err := t.EstablishSession(c, user); err != nil {
		return Identity{}, false
	}

	return Identity{
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.Name,
		IsAdmin:       user.IsAdmin,
		Authenticated: true,
	}, true
}
