package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/civilregistry/backend/internal/application/composition"
	appmention "github.com/civilregistry/backend/internal/application/mention"
	"github.com/civilregistry/backend/internal/infrastructure/config"
	"github.com/civilregistry/backend/internal/infrastructure/logger"
	"github.com/civilregistry/backend/internal/infrastructure/persistence"
	"github.com/civilregistry/backend/internal/infrastructure/rendering"
	"github.com/civilregistry/backend/internal/infrastructure/signature"
	"github.com/civilregistry/backend/internal/infrastructure/storage"
	"github.com/civilregistry/backend/internal/infrastructure/timestamp"
	"github.com/civilregistry/backend/internal/interfaces/http/handler"
	"github.com/civilregistry/backend/internal/interfaces/http/middleware"
	"github.com/civilregistry/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting civil registry backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database, with GORM logging routed through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis, shared by the availability monitor and the review-block store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
	}
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	// Repositories
	officerRepo := persistence.NewGormOfficerRepository(db.DB)
	actRepo := persistence.NewGormActRepository(db.DB)
	mentionRepo := persistence.NewGormMentionRepository(db.DB)
	documentRepo := persistence.NewGormDocumentMentionsRepository(db.DB)
	evidenceRepo := persistence.NewGormEvidenceRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Signature subsystem availability monitor, fed by the optional probe
	monitor := signature.NewRedisMonitorWithClient(redisClient, cfg.Signature.MonitorKey)
	if cfg.Signature.MonitorURL != "" {
		probe := signature.NewProbe(cfg.Signature.MonitorURL, cfg.Signature.MonitorInterval, monitor, log)
		if err := probe.Start(); err != nil {
			log.Fatal("Failed to start availability probe", zap.Error(err))
		}
		defer probe.Stop()
	}

	// Timestamp authority client with Redis-backed review blocks
	tsaClient := timestamp.NewClient(&cfg.Timestamp, redisClient, log)

	// Signed document archive
	archive, err := storage.NewS3DocumentArchive(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize document archive", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := archive.EnsureBucket(ctx)
		cancel()
		if err != nil {
			log.Fatal("Failed to ensure archive bucket", zap.Error(err))
		}
	}

	// PDF rendering and document composition
	renderer := rendering.NewChromedpRenderer(cfg.Render, log)
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing renderer", zap.Error(err))
		}
	}()
	composer := composition.NewService(renderer, log)

	// Signing window gate
	window, err := appmention.NewSigningWindow(cfg.Signature.WindowStart, cfg.Signature.WindowEnd)
	if err != nil {
		log.Fatal("Invalid signing window configuration", zap.Error(err))
	}

	mentionService := appmention.NewMentionService(
		officerRepo,
		actRepo,
		mentionRepo,
		documentRepo,
		evidenceRepo,
		txScope,
		composer,
		monitor,
		tsaClient,
		archive,
		window,
		nil,
		log,
	)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	// The probe paths are listed as skip paths, everything else requires a token
	engine.Use(middleware.JWTAuth(middleware.NewJWTConfig(cfg.JWT)))

	systemHandler := handler.NewSystemHandler(map[string]handler.HealthChecker{
		"database": func(ctx context.Context) error { return db.Ping() },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})
	systemHandler.RegisterRoutes(engine)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	mentionHandler := handler.NewMentionHandler(mentionService, log)
	r.Register(mentionHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
