package main

import (
	"context"
	"time"

	"github.com/markamcfadden/be-nc-news-project/internal/config"
	"github.com/markamcfadden/be-nc-news-project/internal/database"
	"github.com/markamcfadden/be-nc-news-project/internal/repository"
	"github.com/markamcfadden/be-nc-news-project/internal/seed"
	"github.com/markamcfadden/be-nc-news-project/pkg/logger"
)

// seed resets the configured database to the development dataset
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(config.Default().Log)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed.Run(ctx, db, repository.New(db), seed.TestData(), log); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}
}
