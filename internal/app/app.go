package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"github.com/nguyentranbao-ct/shop-catalog/internal/config"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo/socket"
	"github.com/nguyentranbao-ct/shop-catalog/internal/server"
	"github.com/nguyentranbao-ct/shop-catalog/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newRepositories,
			newKafkaPublisher,
			newBroadcaster,
			newProductResolver,

			socket.NewHub,

			usecase.NewProductUsecase,
			usecase.NewCartUsecase,

			server.NewProductController,
			server.NewCartController,
			server.NewSocketController,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
