package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nguyentranbao-ct/shop-catalog/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/shop-catalog/internal/server/middleware"
	"go.uber.org/fx"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	products *ProductController,
	carts *CartController,
	sockets *SocketController,
) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(logger.MustNamed("http"))

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics" && uri != "/ws"
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", sockets.Health)
	e.GET("/ws", sockets.Connect)

	api := e.Group("/api")
	api.GET("/products", products.ListProducts)
	api.GET("/products/:pid", products.GetProduct)
	api.POST("/products", products.CreateProduct)
	api.PUT("/products/:pid", products.UpdateProduct)
	api.DELETE("/products/:pid", products.DeleteProduct)

	api.POST("/carts", carts.CreateCart)
	api.GET("/carts/:cid", carts.GetCart)
	api.POST("/carts/:cid/product/:pid", carts.AddProduct)
	api.DELETE("/carts/:cid/products/:pid", carts.RemoveProduct)
	api.PUT("/carts/:cid", carts.ReplaceItems)
	api.PUT("/carts/:cid/products/:pid", carts.UpdateQuantity)
	api.DELETE("/carts/:cid", carts.ClearCart)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port)
				log.Infow(ctx, "starting HTTP server", "addr", addr)
				err := e.Start(addr)

				// Fall back once to the next port when the base one is
				// taken, then give up.
				if errors.Is(err, syscall.EADDRINUSE) && conf.Server.PortRetry {
					addr = fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port+1)
					log.Warnw(ctx, "port taken, retrying", "addr", addr)
					err = e.Start(addr)
				}
				if !errors.Is(err, http.ErrServerClosed) {
					log.Errorw(ctx, "HTTP server stopped", "error", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}
