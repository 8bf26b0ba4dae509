package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vibecodes/vibecodes-api/config"
	"github.com/vibecodes/vibecodes-api/internal/logging"
	"github.com/vibecodes/vibecodes-api/internal/notifications"
	"github.com/vibecodes/vibecodes-api/internal/storage/postgres"
)

// worker runs one-off maintenance tasks outside the API process.
func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: worker <migrate|cleanup>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.New(cfg.App.Environment, cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer sqlDB.Close()

	switch os.Args[1] {
	case "migrate":
		if err := postgres.Migrate(sqlDB); err != nil {
			logger.Fatal().Err(err).Msg("migrate")
		}
	case "cleanup":
		if _, err := notifications.NewCleanup(notifications.NewRepo(sqlDB)).RunOnce(ctx); err != nil {
			logger.Fatal().Err(err).Msg("cleanup")
		}
	default:
		logger.Fatal().Str("command", os.Args[1]).Msg("unknown command")
	}
}
