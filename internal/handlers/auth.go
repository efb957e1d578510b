package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vpetrakov/webshop/internal/auth"
	"github.com/vpetrakov/webshop/internal/service"
)

type AuthHandler struct {
	Auth   *service.AuthService
	Tokens *auth.TokenService
}

type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

// RegisterForm describes the fields the registration view needs. The renderer
// itself is an external collaborator; the backend hands over the data.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"fields": []string{"email", "password", "name"},
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.Auth.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return mapError(c, err)
	}

	if err := h.Tokens.EstablishSession(c, user); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"fields": []string{"email", "password"},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return mapError(c, err)
	}

	if err := h.Tokens.EstablishSession(c, user); err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"is_admin": user.IsAdmin,
	})
}

// Logout revokes the session and sends the caller back to the landing page.
// Logging out twice is harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Tokens.ClearSession(c); err != nil {
		return mapError(c, err)
	}
	return c.Redirect(http.StatusFound, "/")
}
