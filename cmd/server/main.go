// @title        Timecard API
// @version      1.0
// @description  Time entry lifecycle and approval service.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/timecardhq/timecard-api/internal/api"
	"github.com/timecardhq/timecard-api/internal/infrastructure/config"
	mongodb "github.com/timecardhq/timecard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/timecardhq/timecard-api/internal/infrastructure/db/redis"
	"github.com/timecardhq/timecard-api/internal/infrastructure/queue"
	"github.com/timecardhq/timecard-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.NewEntryRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("entry index creation failed")
	}
	if err := mongodb.NewPeriodRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("period index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	notifier := redisdb.NewNotifier(rdb, log)
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, notifier, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, notifier, cfg.JWTSecret, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
