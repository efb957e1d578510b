package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vpetrakov/webshop/internal/logging"
	"github.com/vpetrakov/webshop/internal/repo"
	"github.com/vpetrakov/webshop/internal/service"
)

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// mapError translates the service error taxonomy to the HTTP boundary. Every
// error is recovered here; none propagates past the request. Unclassified
// errors are logged and surfaced as a bare 500.
func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusConflict, repo.ErrDuplicateEmail.Error())
	case errors.Is(err, repo.ErrUnknownEmail):
		return echo.NewHTTPError(http.StatusUnauthorized, repo.ErrUnknownEmail.Error())
	case errors.Is(err, repo.ErrBadPassword):
		return echo.NewHTTPError(http.StatusUnauthorized, repo.ErrBadPassword.Error())
	case errors.Is(err, repo.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, repo.ErrEmptyCart.Error())
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		logging.FromContext(c.Request().Context()).Error("request failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
