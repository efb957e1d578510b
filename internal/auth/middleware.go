package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// resolve finds the caller, rotating the session off the refresh cookie when
// the access token has expired.
func (t *TokenService) resolve(c echo.Context) Identity {
	if id := t.CurrentIdentity(c); id.Authenticated {
		return id
	}
	if id, ok := t.refreshIdentity(c); ok {
		return id
	}
	return Identity{}
}

// RequireAuthenticated redirects anonymous callers to the login page.
func (t *TokenService) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := t.resolve(c)
		if !id.Authenticated {
			return c.Redirect(http.StatusFound, "/login")
		}
		setIdentity(c, id)
		return next(c)
	}
}

// RequireAdmin redirects anonymous callers to the login page and rejects
// authenticated non-admins with 403.
func (t *TokenService) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := t.resolve(c)
		if !id.Authenticated {
			return c.Redirect(http.StatusFound, "/login")
		}
		if !id.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		setIdentity(c, id)
		return next(c)
	}
}

// LoadIdentity resolves the caller when possible but never rejects the
// request. Used on public pages that render differently for signed-in users.
func (t *TokenService) LoadIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id := t.resolve(c); id.Authenticated {
			setIdentity(c, id)
		}
		return next(c)
	}
}
