package middleware

import (
	"net/http"

	"law-quiz/internal/dto"
	"law-quiz/internal/logger"
	"law-quiz/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const storeUnavailableError = "document store unavailable"

// RequireStore rejects every request with 500 while the quiz store is
// unavailable.
func RequireStore(handle *repository.StoreHandle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := handle.Store(); ok {
			return c.Next()
		}

		logger.Get().Warn("Rejecting request, quiz store unavailable",
			zap.String("path", c.Path()),
			zap.String("reason", handle.Reason()),
		)
		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   storeUnavailableError,
			Message: handle.Reason(),
		})
	}
}
