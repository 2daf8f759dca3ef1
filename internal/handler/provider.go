package handler

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/middleware"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/provider"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/service"
)

type ProviderHandler struct {
	agg     *service.AggregateService
	session *service.Session
}

func NewProviderHandler(agg *service.AggregateService, session *service.Session) *ProviderHandler {
	return &ProviderHandler{agg: agg, session: session}
}

// fetchRequest is the body of both provider POST routes. Credentials
// travel in the body only; they are never logged or persisted.
type fetchRequest struct {
	Credentials  provider.Credentials `json:"credentials"`
	ContainerURI string               `json:"containerUri"`
	DateWindow   string               `json:"dateWindow"`
}

// Containers handles POST /api/providers/:provider/containers
func (h *ProviderHandler) Containers(c fiber.Ctx) error {
	p, err := provider.Parse(c.Params("provider"))
	if err != nil {
		return failWith(c, err)
	}

	var req fetchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	a, err := provider.New(p, req.Credentials, "")
	if err != nil {
		return failWith(c, err)
	}

	lister, ok := a.(provider.ContainerLister)
	if !ok {
		// Providers with a flat listing get an empty set, not an error.
		return c.JSON(fiber.Map{"containers": []any{}})
	}

	containers, err := lister.ListContainers(c.Context())
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{"containers": containers})
}

// FetchVideos handles POST /api/providers/:provider/videos
// Runs the full aggregation to exhaustion and installs the result as the
// session's loaded set.
func (h *ProviderHandler) FetchVideos(c fiber.Ctx) error {
	p, err := provider.Parse(c.Params("provider"))
	if err != nil {
		return failWith(c, err)
	}

	var req fetchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	window, err := service.ParseWindow(req.DateWindow)
	if err != nil {
		return failWith(c, err)
	}

	a, err := provider.New(p, req.Credentials, req.ContainerURI)
	if err != nil {
		return failWith(c, err)
	}

	progress := func(pageIndex, itemsSoFar int) {
		if Metrics.PagesFetched != nil {
			Metrics.PagesFetched.WithLabelValues(string(p)).Inc()
		}
		log.Printf("fetch %s: page %d done, %d videos so far", p, pageIndex, itemsSoFar)
	}

	videos, err := h.agg.Aggregate(c.Context(), a, req.ContainerURI, window, progress)
	if err != nil {
		return failWith(c, err)
	}

	if Metrics.VideosAggregated != nil {
		Metrics.VideosAggregated.WithLabelValues(string(p)).Add(float64(len(videos)))
	}

	return c.JSON(fiber.Map{
		"videos": videos,
		"count":  len(videos),
	})
}

// ListVideos handles GET /api/videos?search=
// Recomputes the displayed subset of the session's loaded set. Filtering
// is always against the full loaded set, so narrowing then widening a
// query restores previously hidden records.
func (h *ProviderHandler) ListVideos(c fiber.Ctx) error {
	// dateWindow is validated here but only narrows a fetch; changing it
	// re-triggers aggregation client-side for date-capable providers.
	if _, err := service.ParseWindow(fiber.Query[string](c, "dateWindow")); err != nil {
		return failWith(c, err)
	}

	search := middleware.ValidateSearchQuery(fiber.Query[string](c, "search"))

	videos := h.session.ApplyFilter(search)
	return c.JSON(fiber.Map{
		"videos": videos,
		"count":  len(videos),
		"total":  len(h.session.Loaded()),
	})
}
