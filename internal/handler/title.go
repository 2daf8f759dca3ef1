package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/middleware"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/service"
)

type TitleHandler struct {
	svc     *service.TitleService
	session *service.Session
}

func NewTitleHandler(svc *service.TitleService, session *service.Session) *TitleHandler {
	return &TitleHandler{svc: svc, session: session}
}

// GetTitles handles POST /api/get-ai-titles
// Batch lookup of previously generated titles. Allowed in any gate state.
func (h *TitleHandler) GetTitles(c fiber.Ctx) error {
	var req struct {
		VideoIDs []string `json:"videoIds"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if len(req.VideoIDs) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "videoIds is required")
	}

	titles, err := h.svc.GetTitles(c.Context(), req.VideoIDs)
	if err != nil {
		return failWith(c, err)
	}
	return c.JSON(fiber.Map{"titles": titles})
}

// Analyze handles POST /api/analyze-thumbnail
func (h *TitleHandler) Analyze(c fiber.Ctx) error {
	var req struct {
		VideoID       string `json:"videoId"`
		ThumbnailURL  string `json:"thumbnailUrl"`
		OriginalTitle string `json:"originalTitle"`
		UserAPIKey    string `json:"userApiKey"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	videoID, msg := middleware.ValidateVideoID(req.VideoID)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
	}
	thumbnailURL, msg := middleware.ValidateThumbnailURL(req.ThumbnailURL)
	if msg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
	}

	entry, err := h.svc.RequestTitle(c.Context(), model.CaptionRequest{
		VideoID:       videoID,
		ThumbnailURL:  thumbnailURL,
		OriginalTitle: middleware.TruncateTitle(req.OriginalTitle),
	}, req.UserAPIKey)
	if err != nil {
		observeCaption("error")
		return failWith(c, err)
	}

	observeCaption("ok")
	h.session.MergeTitles(map[string]string{entry.VideoID: entry.AiTitle})

	return c.JSON(fiber.Map{
		"videoId":    entry.VideoID,
		"aiTitle":    entry.AiTitle,
		"confidence": entry.Confidence,
	})
}

// AnalyzeBulk handles POST /api/analyze-thumbnails-bulk
func (h *TitleHandler) AnalyzeBulk(c fiber.Ctx) error {
	var req struct {
		Videos []struct {
			VideoID       string `json:"videoId"`
			ThumbnailURL  string `json:"thumbnailUrl"`
			OriginalTitle string `json:"originalTitle"`
		} `json:"videos"`
		UserAPIKey string `json:"userApiKey"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}
	if len(req.Videos) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "videos is required")
	}
	if len(req.Videos) > middleware.MaxBulkRecords {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "too many videos in one bulk request")
	}

	reqs := make([]model.CaptionRequest, 0, len(req.Videos))
	for _, v := range req.Videos {
		videoID, msg := middleware.ValidateVideoID(v.VideoID)
		if msg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
		}
		thumbnailURL, msg := middleware.ValidateThumbnailURL(v.ThumbnailURL)
		if msg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
		}
		reqs = append(reqs, model.CaptionRequest{
			VideoID:       videoID,
			ThumbnailURL:  thumbnailURL,
			OriginalTitle: middleware.TruncateTitle(v.OriginalTitle),
		})
	}

	result, err := h.svc.RequestBulk(c.Context(), reqs, req.UserAPIKey, h.session.SetBulkProgress)
	if err != nil {
		return failWith(c, err)
	}

	// Reflect the run in the loaded set so the next filter pass shows it.
	merged := make(map[string]string, len(result.Results))
	for _, r := range result.Results {
		merged[r.VideoID] = r.AiTitle
		if r.Cached {
			observeCaption("cached")
		} else {
			observeCaption("ok")
		}
	}
	for range result.Errors {
		observeCaption("error")
	}
	h.session.MergeTitles(merged)

	return c.JSON(result)
}

// BulkStatus handles GET /api/bulk-status
// Reports the counters of the most recent bulk run so a second client
// (or a polling UI) can follow an in-flight enrichment.
func (h *TitleHandler) BulkStatus(c fiber.Ctx) error {
	return c.JSON(h.session.BulkProgress())
}

// Unlock handles POST /api/unlock-ai
func (h *TitleHandler) Unlock(c fiber.Ctx) error {
	var req struct {
		Password   string `json:"password"`
		UserAPIKey string `json:"userApiKey"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	if !h.svc.Unlock(req.Password, req.UserAPIKey) {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Wrong password or API key")
	}
	return c.JSON(fiber.Map{"unlocked": true})
}

func observeCaption(outcome string) {
	if Metrics.CaptionRequests != nil {
		Metrics.CaptionRequests.WithLabelValues(outcome).Inc()
	}
}
