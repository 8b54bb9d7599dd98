package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"hotel-booking/cmd"
	"hotel-booking/internal/data/memstore"
	"hotel-booking/internal/data/mongostore"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/wire"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/events"
	"hotel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	repos, closeStore, err := openRepository(config, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer closeStore()

	publisher := openPublisher(config, logger)
	defer publisher.Close()

	rdb := openRedis(config, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	app, err := wire.Wiring(repos, publisher, rdb, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

// openRepository connects the configured backend and applies its schema.
func openRepository(config *utils.Config, logger *zap.Logger) (*repository.Repository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch config.Store.Driver {
	case utils.StoreDriverPostgres:
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Database connected successfully")
		return repository.NewRepository(db, logger), db.Close, nil

	case utils.StoreDriverMongo:
		client, db, err := database.InitMongo(config.Mongo)
		if err != nil {
			return nil, nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		logger.Info("MongoDB connected successfully", zap.String("database", config.Mongo.Name))
		closer := func() { _ = client.Disconnect(context.Background()) }
		return mongostore.New(db, logger), closer, nil

	case utils.StoreDriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return memstore.New(logger), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", config.Store.Driver)
	}
}

func openPublisher(config *utils.Config, logger *zap.Logger) events.Publisher {
	if config.RabbitMQ.URL == "" {
		return events.NewNoopPublisher()
	}

	publisher, err := events.NewAMQPPublisher(config.RabbitMQ, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, booking events disabled", zap.Error(err))
		return events.NewNoopPublisher()
	}

	logger.Info("Publishing booking events", zap.String("exchange", config.RabbitMQ.Exchange))
	return publisher
}

// openRedis returns nil when rate limiting is off or Redis is unreachable.
func openRedis(config *utils.Config, logger *zap.Logger) *redis.Client {
	if config.Redis.Addr == "" || !config.RateLimit.Enabled {
		return nil
	}

	rdb, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		return nil
	}

	return rdb
}
