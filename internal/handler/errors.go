package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Amaraciuri/VideoDownloaderPro/internal/middleware"
	"github.com/Amaraciuri/VideoDownloaderPro/internal/model"
)

// statusForKind maps an error kind to the HTTP status of the response.
func statusForKind(k model.Kind) int {
	switch k {
	case model.KindAuth:
		return fiber.StatusUnauthorized
	case model.KindNotFound:
		return fiber.StatusNotFound
	case model.KindRateLimited:
		return fiber.StatusTooManyRequests
	case model.KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadGateway
	}
}

// failWith renders err as the standard error envelope. Error messages are
// already user-facing; adapters strip upstream response bodies.
func failWith(c fiber.Ctx, err error) error {
	kind := model.KindOf(err)
	return middleware.ErrorResponse(c, statusForKind(kind), kind.String(), err.Error())
}
