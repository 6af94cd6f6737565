package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/orbital-minutes/docs"
	"github.com/johnquangdev/orbital-minutes/internal/adapter/handler"
	"github.com/johnquangdev/orbital-minutes/internal/domain/entities"
	"github.com/johnquangdev/orbital-minutes/internal/domain/repositories"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/audio"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/export"
	"github.com/johnquangdev/orbital-minutes/internal/infrastructure/storage"
	"github.com/johnquangdev/orbital-minutes/internal/usecase/minutes"
	pkgai "github.com/johnquangdev/orbital-minutes/pkg/ai"
	"github.com/johnquangdev/orbital-minutes/pkg/config"
	"github.com/johnquangdev/orbital-minutes/pkg/logger"
	pkgvalidator "github.com/johnquangdev/orbital-minutes/pkg/validator"
)

// @title           Orbital Minutes API
// @version         1.0
// @description     Turns meeting recordings into structured minutes: transcription, markdown generation, extraction and export

// @host      localhost:8080
// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit(strconv.FormatInt(cfg.Server.MaxUploadMB, 10) + "M"))

	zl.Info("🔧 Initializing dependencies...")

	transcriber, err := pkgai.NewTranscriber(cfg, zl)
	if err != nil {
		zl.Fatal("failed to create transcriber", zap.Error(err))
	}
	if w, ok := transcriber.(*pkgai.WhisperClient); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if !w.IsAvailable(ctx) {
			zl.Warn("⚠️  Whisper sidecar not reachable, jobs will fail until it is up", zap.String("url", cfg.Whisper.URL))
		}
		cancel()
	}

	generator := pkgai.NewMinutesRouter(cfg, zl)

	exportCache := cache.NewMemoryStore(5 * time.Minute)
	defer exportCache.Close()

	deps := minutes.Dependencies{
		Audio:       audio.NewFetcher(&http.Client{Timeout: 30 * time.Minute}, zl),
		Transcriber: transcriber,
		Generator:   generator,
		GeneratorForKey: func(apiKey string) repositories.MinutesGenerator {
			return generator.WithAPIKey(apiKey)
		},
		Exporters: []repositories.Exporter{
			export.NewPDFExporter(zl),
			export.NewDOCXExporter(filepath.Join(cfg.Pipeline.WorkDir, "tmp")),
			export.NewHTMLExporter(),
		},
		Cache:  exportCache,
		Parser: minutes.NewParser(),
		Logger: zl,
	}

	var storageHandler *handler.Storage
	if cfg.Storage.Enabled {
		zl.Info("📦 Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		store, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			cancel()
			zl.Fatal("failed to connect to storage", zap.Error(err))
		}
		info, err := store.GetBucketInfo(ctx)
		cancel()
		if err != nil {
			zl.Warn("could not read bucket info", zap.Error(err))
		}
		jobStore := store.WithPrefix("jobs")
		deps.Artifacts = jobStore
		storageHandler = handler.NewStorageHandler(jobStore, zl)
		zl.Info("✅ Artifacts will be published", zap.Any("bucket", info))
	} else {
		deps.Artifacts = storage.NewLocalStore(cfg.Pipeline.OutputDir)
	}

	svc := minutes.NewService(deps, minutes.Options{
		WorkDir:        cfg.Pipeline.WorkDir,
		WhisperModel:   cfg.Pipeline.WhisperModel,
		LLMModel:       cfg.Pipeline.LLMModel,
		ExportCacheTTL: cfg.Pipeline.ExportCacheTTL,
		JobTimeout:     cfg.Pipeline.JobTimeout,
	})
	svc.OnProgress(func(p entities.Progress) {
		zl.Info("🔄 Progress", zap.Int("percent", p.Percent), zap.String("stage", p.Stage), zap.String("message", p.Message))
	})

	sessionHandler := handler.NewSessionHandler(svc, zl)
	router := handler.NewRouter(cfg, sessionHandler, storageHandler)
	router.Setup(e)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		addr := cfg.GetServerAddr()
		zl.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("transcriber", transcriber.Name()),
			zap.String("llm_model", cfg.Pipeline.LLMModel),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zl.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		zl.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	zl.Info("✅ Server stopped gracefully")
}
