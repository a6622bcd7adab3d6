package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/delight-spot/api/internal/config"
	mongodoc "github.com/sngm3741/delight-spot/api/internal/infrastructure/mongo"
	"github.com/sngm3741/delight-spot/api/internal/server"
	"github.com/sngm3741/delight-spot/api/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := util.InitLogger(cfg.LogLevel)

	deps := server.Deps{Logger: logger}
	switch cfg.StorageDriver {
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()

		clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			logger.Error("mongo connect failed", "error", err)
			os.Exit(1)
		}
		names := server.MongoCollections(cfg.Collections)
		db := client.Database(cfg.MongoDatabase)
		if err := mongodoc.EnsureIndexes(ctx, db, names); err != nil {
			logger.Error("ensure indexes failed", "error", err)
			os.Exit(1)
		}
		deps.Client = client
		deps.Repositories = server.NewMongoRepositories(db, names)
	default:
		deps.Repositories = server.NewMemoryRepositories()
	}

	if cfg.RedisAddr != "" {
		deps.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	}

	app, err := server.New(cfg, deps)
	if err != nil {
		logger.Error("server init failed", "error", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
