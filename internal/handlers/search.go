package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vpetrakov/webshop/internal/service"
	"github.com/vpetrakov/webshop/internal/util"
)

type SearchHandler struct {
	Svc *service.SearchService
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.Svc.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":    total,
		"products": products,
	})
}
