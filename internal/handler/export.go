package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/middleware"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	svc     *service.ExportService
	session *service.Session
}

func NewExportHandler(svc *service.ExportService, session *service.Session) *ExportHandler {
	return &ExportHandler{svc: svc, session: session}
}

// Export handles POST /api/export
// Renders the session's displayed set, so an active search filter narrows
// the spreadsheet too.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	videos := h.session.Displayed()
	if len(videos) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No videos loaded to export")
	}

	data, err := h.svc.Render(videos)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render spreadsheet")
	}

	p, container := h.session.Source()
	filename := h.svc.Filename(p, container, time.Now())

	c.Set("Content-Type", xlsxContentType)
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(data)
}
