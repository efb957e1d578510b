package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Identity is the resolved caller of a request. The zero value is the
// anonymous caller.
type Identity struct {
	UserID        uint
	Email         string
	Name          string
	IsAdmin       bool
	Authenticated bool
}

const identityKey = "identity"

func setIdentity(c echo.Context, id Identity) {
	c.Set(identityKey, id)
}

// IdentityFromContext returns the identity stored by the guards, or the
// anonymous identity.
func IdentityFromContext(c echo.Context) Identity {
	if v := c.Get(identityKey); v != nil {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}

func identityFromClaims(claims jwt.MapClaims) (Identity, error) {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return Identity{}, fmt.Errorf("invalid subject claim")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	admin, _ := claims["adm"].(bool)

	return Identity{
		UserID:        uint(sub),
		Email:         email,
		Name:          name,
		IsAdmin:       admin,
		Authenticated: true,
	}, nil
}
