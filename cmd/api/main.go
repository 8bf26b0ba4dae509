package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/vibecodes/vibecodes-api/config"
	"github.com/vibecodes/vibecodes-api/internal/auth"
	"github.com/vibecodes/vibecodes-api/internal/bootstrap"
	"github.com/vibecodes/vibecodes-api/internal/db"
	"github.com/vibecodes/vibecodes-api/internal/logging"
	"github.com/vibecodes/vibecodes-api/internal/notifications"
	"github.com/vibecodes/vibecodes-api/internal/storage/postgres"
)

const serviceName = "vibecodes-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer sqlDB.Close()

	if cfg.Database.RunMigrations {
		if err := postgres.Migrate(sqlDB); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
	}

	pool, err := db.Open(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("open pgx pool")
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, live notifications disabled until it recovers")
	}

	deps := bootstrap.RouterDeps{
		ServiceName: serviceName,
		Config:      cfg,
		SQL:         sqlDB,
		Pool:        pool.Pool,
		Redis:       rdb,
	}
	if cfg.DevAuth() {
		logger.Warn().Msg("FIREBASE_CREDENTIALS_PATH not set, trusting X-User-Id header")
	} else {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			logger.Fatal().Err(err).Msg("init firebase")
		}
		deps.Verifier = client
	}

	cleanup := notifications.NewCleanup(notifications.NewRepo(sqlDB))
	if err := cleanup.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start notification cleanup")
	}
	defer cleanup.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.App.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
