package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/handler"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Provider *handler.ProviderHandler
	Title    *handler.TitleHandler
	Export   *handler.ExportHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (before API group, never rate limited)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	fetchLimit := middleware.NewFetchRateLimiter().Handler()
	captionLimit := middleware.NewCaptionRateLimiter().Handler()
	bulkLimit := middleware.NewBulkCaptionRateLimiter().Handler()
	exportLimit := middleware.NewExportRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Provider routes: every fetch fans out upstream, so both share a limiter
	api.Post("/providers/:provider/containers", h.Provider.Containers, fetchLimit)
	api.Post("/providers/:provider/videos", h.Provider.FetchVideos, fetchLimit)
	api.Get("/videos", h.Provider.ListVideos)

	// AI title routes
	api.Post("/get-ai-titles", h.Title.GetTitles)
	api.Post("/analyze-thumbnail", h.Title.Analyze, captionLimit)
	api.Post("/analyze-thumbnails-bulk", h.Title.AnalyzeBulk, bulkLimit)
	api.Get("/bulk-status", h.Title.BulkStatus)
	api.Post("/unlock-ai", h.Title.Unlock)

	// Export route
	api.Post("/export", h.Export.Export, exportLimit)
}
