package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentranbao-ct/shop-catalog/internal/config"
	"github.com/nguyentranbao-ct/shop-catalog/internal/kafka"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo/jsonfile"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/shop-catalog/internal/repo/socket"
	"github.com/nguyentranbao-ct/shop-catalog/internal/usecase"
	"github.com/nguyentranbao-ct/shop-catalog/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

type repositories struct {
	fx.Out

	Products repo.ProductRepository
	Carts    repo.CartRepository
}

// newRepositories picks the storage backend once at startup; no operation
// branches on the driver afterwards.
func newRepositories(lc fx.Lifecycle, conf *config.Config) (repositories, error) {
	drivers := []string{config.DriverMongo, config.DriverFile}
	if !util.SliceIncludes(drivers, conf.Storage.Driver) {
		return repositories{}, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}

	if conf.Storage.Driver == config.DriverFile {
		return repositories{
			Products: jsonfile.NewProductRepository(conf.Storage.DataDir),
			Carts:    jsonfile.NewCartRepository(conf.Storage.DataDir),
		}, nil
	}

	db, err := newMongoDB(lc, conf)
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		Products: mongodb.NewProductRepository(db),
		Carts:    mongodb.NewCartRepository(db),
	}, nil
}

func newMongoDB(lc fx.Lifecycle, conf *config.Config) (*mongodb.DB, error) {
	opts := options.Client().
		SetAppName("shop-catalog").
		SetDirect(conf.Database.Direct).
		SetHosts(conf.Database.Hosts)

	if conf.Database.Username != "" {
		opts.SetAuth(options.Credential{
			Username:      conf.Database.Username,
			Password:      conf.Database.Password,
			AuthSource:    conf.Database.AuthDB,
			AuthMechanism: "SCRAM-SHA-1",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	db := &mongodb.DB{
		Client:   client,
		Database: client.Database(conf.Database.Database),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx, nil); err != nil {
				return fmt.Errorf("ping mongo: %w", err)
			}
			return mongodb.EnsureIndexes(ctx, db)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})

	return db, nil
}

func newKafkaPublisher(lc fx.Lifecycle, conf *config.Config) (*kafka.Publisher, error) {
	publisher, err := kafka.NewPublisher(conf)
	if err != nil {
		return nil, fmt.Errorf("init kafka publisher: %w", err)
	}
	if publisher != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return publisher.Close()
			},
		})
	}
	return publisher, nil
}

func newBroadcaster(lc fx.Lifecycle, hub *socket.Hub, publisher *kafka.Publisher) usecase.CatalogBroadcaster {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			hub.Close()
			return nil
		},
	})

	sinks := []usecase.CatalogBroadcaster{socket.NewBroadcaster(hub)}
	if publisher != nil {
		sinks = append(sinks, publisher)
	}
	return usecase.NewMultiBroadcaster(sinks...)
}

func newProductResolver(products usecase.ProductUsecase) usecase.ProductResolver {
	return products
}
