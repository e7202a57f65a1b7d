package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/usecase"
)

type CartController struct {
	carts    usecase.CartUsecase
	products usecase.ProductUsecase
}

func NewCartController(carts usecase.CartUsecase, products usecase.ProductUsecase) *CartController {
	return &CartController{
		carts:    carts,
		products: products,
	}
}

func (h *CartController) CreateCart(c echo.Context) error {
	cart, err := h.carts.Create(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cart)
}

func (h *CartController) GetCart(c echo.Context) error {
	cart, err := h.carts.GetByID(c.Request().Context(), c.Param("cid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// AddProduct verifies the product exists before delegating: the cart usecase
// treats the reference as opaque, so the existence check lives here.
func (h *CartController) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.products.GetByID(ctx, c.Param("pid")); err != nil {
		return err
	}

	cart, err := h.carts.AddProduct(ctx, c.Param("cid"), c.Param("pid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartController) RemoveProduct(c echo.Context) error {
	cart, err := h.carts.RemoveProduct(c.Request().Context(), c.Param("cid"), c.Param("pid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

type replaceItemsRequest struct {
	Products []models.LineItem `json:"products"`
}

func (h *CartController) ReplaceItems(c echo.Context) error {
	var req replaceItemsRequest
	if err := c.Bind(&req); err != nil {
		return models.NewValidationError("invalid request body")
	}
	if req.Products == nil {
		return models.NewValidationError("products must be an array")
	}

	cart, err := h.carts.ReplaceItems(c.Request().Context(), c.Param("cid"), req.Products)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *CartController) UpdateQuantity(c echo.Context) error {
	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return models.NewValidationError("invalid request body")
	}
	if req.Quantity == nil {
		return models.NewValidationError("quantity is required")
	}

	cart, err := h.carts.UpdateQuantity(c.Request().Context(), c.Param("cid"), c.Param("pid"), *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartController) ClearCart(c echo.Context) error {
	cart, err := h.carts.Clear(c.Request().Context(), c.Param("cid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}
