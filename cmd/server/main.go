package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/config"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/db"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/handler"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/middleware"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/repository"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/router"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "video-aggregator")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	handler.InitMetrics(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	titleRepo := repository.NewTitleRepo(pool)
	captionSvc := service.NewCaptionService(cfg.OpenAIAPIKey)
	titleSvc := service.NewTitleService(titleRepo, cache, captionSvc, cfg.AIUnlockSecret)

	session := service.NewSession()
	aggSvc := service.NewAggregateService(titleSvc, session)
	exportSvc := service.NewExportService()

	app := fiber.New(fiber.Config{
		AppName:      "Video Aggregator API",
		ServerHeader: "VideoAggregator",
	})

	router.Setup(app, &router.Handlers{
		Provider: handler.NewProviderHandler(aggSvc, session),
		Title:    handler.NewTitleHandler(titleSvc, session),
		Export:   handler.NewExportHandler(exportSvc, session),
		Health:   handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	log.Printf("video aggregator backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
