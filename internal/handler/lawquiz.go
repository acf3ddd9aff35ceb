package handler

import (
	"law-quiz/internal/dto"
	"law-quiz/internal/logger"
	"law-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LawQuizHandler handles the quiz batch endpoints.
type LawQuizHandler struct {
	service service.LawQuizService
}

// NewLawQuizHandler creates a new LawQuizHandler instance
func NewLawQuizHandler(service service.LawQuizService) *LawQuizHandler {
	return &LawQuizHandler{
		service: service,
	}
}

// GetLatest handles GET /api/lawquizzes/latest. It returns the quizzes of
// the most recent batch, or [] when nothing has been generated yet.
func (h *LawQuizHandler) GetLatest(c *fiber.Ctx) error {
	quizzes, err := h.service.Latest(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GenerateNew handles POST /api/lawquizzes/new.
func (h *LawQuizHandler) GenerateNew(c *fiber.Ctx) error {
	quizzes, err := h.service.GenerateNew(c.UserContext())
	if err != nil {
		return err
	}

	logger.Get().Info("Generated new quiz batch", zap.Int("quizzes", len(quizzes)))
	return c.JSON(quizzes)
}

// Health handles GET /healthz.
func (h *LawQuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}
