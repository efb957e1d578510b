package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vpetrakov/webshop/internal/auth"
)

type PageHandler struct{}

// Index is the landing page. Signed-in visitors go straight to the catalog.
func (h *PageHandler) Index(c echo.Context) error {
	if id := auth.IdentityFromContext(c); id.Authenticated {
		return c.Redirect(http.StatusFound, "/products")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Welcome to our eCommerce site!",
	})
}
