package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/server/middleware"
	"github.com/nguyentranbao-ct/shop-catalog/internal/usecase"
)

type ProductController struct {
	products usecase.ProductUsecase
}

func NewProductController(products usecase.ProductUsecase) *ProductController {
	return &ProductController{products: products}
}

// parseProductFilter reads the optional listing query parameters. Unset
// fields are no-ops; malformed values are validation errors.
func parseProductFilter(c echo.Context) (models.ProductFilter, error) {
	filter := models.ProductFilter{
		Category: c.QueryParam("category"),
	}

	if raw := c.QueryParam("status"); raw != "" {
		status, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, models.NewValidationError("status must be a boolean")
		}
		filter.Status = &status
	}

	if raw := c.QueryParam("sort"); raw != "" {
		switch order := models.SortOrder(strings.ToLower(raw)); order {
		case models.SortAsc, models.SortDesc:
			filter.Sort = order
		default:
			return filter, models.NewValidationError("sort must be asc or desc")
		}
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return filter, models.NewValidationError("limit must be a positive integer")
		}
		filter.Limit = limit
	}

	return filter, nil
}

func (h *ProductController) ListProducts(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if ok, _ := strconv.ParseBool(c.QueryParam("withTotal")); ok {
		page, err := h.products.ListWithTotal(ctx, filter)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, page)
	}

	products, err := h.products.List(ctx, filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductController) GetProduct(c echo.Context) error {
	product, err := h.products.GetByID(c.Request().Context(), c.Param("pid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductController) CreateProduct(c echo.Context) error {
	var input models.ProductInput
	if err := c.Bind(&input); err != nil {
		return models.NewValidationError("invalid request body")
	}

	product, err := h.products.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductController) UpdateProduct(c echo.Context) error {
	var update models.ProductUpdate
	if err := c.Bind(&update); err != nil {
		return models.NewValidationError("invalid request body")
	}

	product, err := h.products.Update(c.Request().Context(), c.Param("pid"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductController) DeleteProduct(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("pid")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, middleware.Response{Success: true})
}
