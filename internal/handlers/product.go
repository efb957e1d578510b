package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vpetrakov/webshop/internal/models"
	"github.com/vpetrakov/webshop/internal/service"
	"github.com/vpetrakov/webshop/internal/util"
)

type ProductHandler struct {
	Catalog *service.CatalogService
}

type productRequest struct {
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	ImageURL    string  `json:"image_url" form:"image_url"`
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Catalog.GetProducts(c.Request().Context(), offset, limit)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	prod, err := h.Catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) AddProductForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"fields": []string{"name", "description", "price", "image_url"},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}
	if err := h.Catalog.CreateProduct(c.Request().Context(), &prod); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, prod)
}

// EditProductForm returns the current product so the edit view can prefill.
func (h *ProductHandler) EditProductForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	prod, err := h.Catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prod, err := h.Catalog.UpdateProduct(c.Request().Context(), id, models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
