package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/familytree/gallery-api/internal/config"
	"github.com/familytree/gallery-api/internal/domain/events"
	"github.com/familytree/gallery-api/internal/domain/image"
	"github.com/familytree/gallery-api/internal/pkg/database"
	"github.com/familytree/gallery-api/internal/pkg/database/migrations"
	"github.com/familytree/gallery-api/internal/pkg/imaging"
	"github.com/familytree/gallery-api/internal/pkg/lock"
	"github.com/familytree/gallery-api/internal/pkg/logger"
	"github.com/familytree/gallery-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	_ = logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
		Service:     "sync-worker",
	})

	log.Info().
		Str("images_dir", cfg.ImagesDir).
		Str("schedule", cfg.SyncSchedule).
		Msg("Starting sync-worker")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := migrations.Migrate(db, migrations.Up); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	imageDir, err := storage.NewImageDir(cfg.ImagesDir, imaging.IsSupported)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ImagesDir).Msg("Failed to open image directory")
	}

	var mirror storage.Mirror = storage.NopMirror{}
	if cfg.MirrorEnabled() {
		s3Mirror, err := storage.NewS3Mirror(ctx, storage.S3Config{
			Endpoint:        cfg.MirrorEndpoint,
			Region:          cfg.MirrorRegion,
			AccessKeyID:     cfg.MirrorAccessKeyID,
			AccessKeySecret: cfg.MirrorAccessKeySecret,
			Bucket:          cfg.MirrorBucket,
			Prefix:          cfg.MirrorPrefix,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create originals mirror")
		}
		mirror = s3Mirror
	}

	service := image.NewService(
		image.NewRepository(db),
		imageDir,
		imaging.NewProcessor(imaging.DefaultConfig()),
		lock.New(rdb, cfg.LockTTL),
		events.NewPublisher(rdb),
		mirror,
		image.Config{DeactivateMissing: cfg.SyncDeactivateMissing},
	)

	w := newWorker(service)
	go w.run(ctx)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SyncSchedule, w.request); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.SyncSchedule).Msg("Invalid sync schedule")
	}
	scheduler.Start()

	if rdb != nil {
		go subscribeWakeups(ctx, rdb, w)
	} else {
		log.Warn().Msg("REDIS_URL not set: on-demand sync wake-ups disabled")
	}

	// initial pass on startup
	w.request()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	log.Info().Msg("Shutdown signal received")

	<-scheduler.Stop().Done()
	cancel()
	log.Info().Msg("sync-worker stopped")
}
