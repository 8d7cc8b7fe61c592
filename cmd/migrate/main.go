package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/familytree/gallery-api/internal/config"
	"github.com/familytree/gallery-api/internal/pkg/database"
	"github.com/familytree/gallery-api/internal/pkg/database/migrations"
	"github.com/familytree/gallery-api/internal/pkg/logger"
)

func main() {
	direction := flag.String("direction", migrations.Up, "migration direction: up, down or status")
	flag.Parse()

	cfg := config.Load()
	_ = logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
		Service:     "migrate",
	})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := migrations.Migrate(db, *direction); err != nil {
		log.Fatal().Err(err).Str("direction", *direction).Msg("Migration failed")
	}
	log.Info().Str("direction", *direction).Msg("Migrations complete")
}
