package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vpetrakov/webshop/internal/auth"
	"github.com/vpetrakov/webshop/internal/service"
)

type CartHandler struct {
	Cart *service.CartService
}

func (h *CartHandler) GetCart(c echo.Context) error {
	id := auth.IdentityFromContext(c)

	items, total, err := h.Cart.View(c.Request().Context(), id.UserID)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
		"total": total,
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	id := auth.IdentityFromContext(c)

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	item, err := h.Cart.AddOrIncrement(c.Request().Context(), id.UserID, productID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	id := auth.IdentityFromContext(c)

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Cart.Remove(c.Request().Context(), id.UserID, productID); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Checkout(c echo.Context) error {
	id := auth.IdentityFromContext(c)

	order, err := h.Cart.Checkout(c.Request().Context(), id.UserID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}
