package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/workledger/timesheet-service/internal/api"
	"github.com/workledger/timesheet-service/internal/infrastructure/config"
	workledgermongo "github.com/workledger/timesheet-service/internal/infrastructure/db/mongo"
	workledgerredis "github.com/workledger/timesheet-service/internal/infrastructure/db/redis"
	"github.com/workledger/timesheet-service/pkg/logger"
)

// @title           WorkLedger Timesheet API
// @version         1.0
// @description     Work entry tracking service: CRUD over timesheet entries with a DRAFT → SUBMITTED → LOCKED lifecycle.
// @BasePath        /
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := workledgermongo.Connect(ctx, workledgermongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := workledgermongo.NewWorkEntryRepository(db).EnsureIndexes(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("failed to ensure mongodb indexes")
	}

	rdb, err := workledgerredis.Connect(ctx, workledgerredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	e := api.NewRouter(db, rdb, zlog)

	go func() {
		zlog.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil {
			zlog.Info().Err(err).Msg("http server stopped")
		}
	}()

	waitForShutdown(zlog)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func waitForShutdown(zlog zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	zlog.Info().Str("signal", sig.String()).Msg("shutting down")
}
