package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/astralgate/auth-system/internal/api"
	"github.com/astralgate/auth-system/internal/core/ports"
	"github.com/astralgate/auth-system/internal/infrastructure/db/mongo"
	redisdb "github.com/astralgate/auth-system/internal/infrastructure/db/redis"
	"github.com/astralgate/auth-system/internal/infrastructure/maintenance"
	"github.com/astralgate/auth-system/internal/infrastructure/memory"
	"github.com/astralgate/auth-system/internal/pkg/config"
	"github.com/astralgate/auth-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "auth-system",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Datastores ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	directory := mongo.NewAccountRepository(db)
	if err := directory.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	var sessions ports.SessionStore
	if cfg.SessionBackend == "memory" {
		sessions = memory.NewSessionStore(nil)
	} else {
		sessions = redisdb.NewSessionStore(rdb)
	}

	// --- Background sweep ---
	// The Redis store expires sessions itself and sweeps as a no-op; the
	// sweeper matters for the memory backend, where expired entries would
	// otherwise accumulate until process restart.
	maintenance.NewSweeper(sessions, cfg.SweepInterval, log).Start(ctx)

	// --- HTTP surface ---
	e := api.NewRouter(db, rdb, api.Options{
		Sessions:      sessions,
		SessionTTL:    cfg.SessionTTL,
		ChallengeTTL:  cfg.ChallengeTTL,
		SecureCookies: cfg.Env != "development",
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
