package server

import (
	"encoding/json"
	"net/http"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo/socket"
	"github.com/nguyentranbao-ct/shop-catalog/internal/usecase"
)

type SocketController struct {
	hub      *socket.Hub
	products usecase.ProductUsecase
}

func NewSocketController(hub *socket.Hub, products usecase.ProductUsecase) *SocketController {
	return &SocketController{
		hub:      hub,
		products: products,
	}
}

// Connect upgrades the viewer and seeds it with the current catalog.
func (h *SocketController) Connect(c echo.Context) error {
	ctx := c.Request().Context()

	var snapshot []byte
	products, err := h.products.List(ctx, models.ProductFilter{})
	if err != nil {
		// Connect anyway; the viewer catches up on the next broadcast.
		log.Warnw(ctx, "connect viewer without snapshot", "error", err)
	} else {
		snapshot, err = json.Marshal(socket.Event{Event: "products", Data: products})
		if err != nil {
			log.Errorw(ctx, "encode snapshot", "error", err)
			snapshot = nil
		}
	}

	if err := h.hub.HandleConnection(c.Response(), c.Request(), snapshot); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "websocket upgrade failed")
	}
	return nil
}

func (h *SocketController) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"viewers": h.hub.ClientCount(),
	})
}
