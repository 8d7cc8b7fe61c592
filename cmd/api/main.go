package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/familytree/gallery-api/internal/config"
	"github.com/familytree/gallery-api/internal/domain/auth"
	"github.com/familytree/gallery-api/internal/domain/clientlog"
	"github.com/familytree/gallery-api/internal/domain/events"
	"github.com/familytree/gallery-api/internal/domain/image"
	"github.com/familytree/gallery-api/internal/domain/link"
	"github.com/familytree/gallery-api/internal/domain/person"
	"github.com/familytree/gallery-api/internal/domain/user"
	"github.com/familytree/gallery-api/internal/middleware"
	"github.com/familytree/gallery-api/internal/pkg/database"
	"github.com/familytree/gallery-api/internal/pkg/database/migrations"
	"github.com/familytree/gallery-api/internal/pkg/imaging"
	"github.com/familytree/gallery-api/internal/pkg/jwt"
	"github.com/familytree/gallery-api/internal/pkg/lock"
	"github.com/familytree/gallery-api/internal/pkg/logger"
	"github.com/familytree/gallery-api/internal/pkg/response"
	"github.com/familytree/gallery-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	_ = logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
		Service:     "api",
	})
	startedAt := time.Now()

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("images_dir", cfg.ImagesDir).
		Bool("auth_enabled", cfg.AuthEnabled).
		Msg("Starting gallery API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := migrations.Migrate(db, migrations.Up); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	appCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// ---------- Infrastructure ----------
	imageDir, err := storage.NewImageDir(cfg.ImagesDir, imaging.IsSupported)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ImagesDir).Msg("Failed to open image directory")
	}

	var mirror storage.Mirror = storage.NopMirror{}
	if cfg.MirrorEnabled() {
		s3Mirror, err := storage.NewS3Mirror(appCtx, storage.S3Config{
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
		log.Info().Str("bucket", cfg.MirrorBucket).Msg("Mirroring originals to object storage")
	}

	locker := lock.New(redis, cfg.LockTTL)
	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- WebSocket hub ----------
	hub := events.NewHub(redis)
	go hub.Run(appCtx)

	// ---------- Repositories ----------
	imageRepo := image.NewRepository(db)
	personRepo := person.NewRepository(db)
	linkRepo := link.NewRepository(db)
	userRepo := user.NewRepository(db)

	// ---------- Services ----------
	imageService := image.NewService(
		imageRepo,
		imageDir,
		imaging.NewProcessor(imaging.DefaultConfig()),
		locker,
		hub,
		mirror,
		image.Config{DeactivateMissing: cfg.SyncDeactivateMissing},
	)
	personService := person.NewService(personRepo, hub)
	linkService := link.NewService(linkRepo, imageService, personService, locker, hub)
	authService := auth.NewService(userRepo, jwtService)

	if created, err := authService.EnsureAdmin(appCtx, auth.AdminConfig{
		Email:    cfg.AdminEmail,
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}); err != nil {
		log.Error().Err(err).Msg("Failed to bootstrap admin user")
	} else if created {
		log.Info().Str("email", cfg.AdminEmail).Msg("Bootstrap admin created")
	}

	// ---------- Handlers ----------
	imageHandler := image.NewHandler(imageService, image.NewTrigger(redis, imageService))
	personHandler := person.NewHandler(personService)
	linkHandler := link.NewHandler(linkService)
	authHandler := auth.NewHandler(authService)
	eventsHandler := events.NewHandler(hub, cfg.AllowedOrigins)
	clientLogHandler := clientlog.NewHandler()

	authMiddleware := middleware.Auth(jwtService)
	requireAuth := middleware.RequireAuth(cfg.AuthEnabled, jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/ws", eventsHandler.WebSocket)

	health := func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		code := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		response.JSON(w, code, map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startedAt).Seconds(),
			"clients":   hub.ClientCount(),
		})
	}
	r.Get("/health", health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5, "application/json"))

		r.Get("/health", health)

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		mountImageRoutes(r, imageHandler.Routes(requireAuth), linkHandler.PeopleForImage)
		mountPeopleRoutes(r,
			func(r chi.Router) { personHandler.Routes(r, requireAuth) },
			func(r chi.Router) { linkHandler.Routes(r, requireAuth) },
		)
		r.Post("/logs", clientLogHandler.Create)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
