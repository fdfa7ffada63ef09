package handlers

import (
	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdviceHandler struct {
	advisorService *service.AdvisorService
	logger         *zap.Logger
}

func NewAdviceHandler(advisorService *service.AdvisorService, logger *zap.Logger) *AdviceHandler {
	return &AdviceHandler{
		advisorService: advisorService,
		logger:         logger,
	}
}

// Advise godoc
// @Summary Ask for spending advice
// @Description Answer a question about the latest upload and budgets with GigaChat
// @Tags advice
// @Accept json
// @Produce json
// @Param request body dto.AdviceRequest true "Question"
// @Success 200 {object} dto.AdviceResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /advice [post]
func (h *AdviceHandler) Advise(c *fiber.Ctx) error {
	var req dto.AdviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	answer, err := h.advisorService.Advise(c.UserContext(), req.Question)
	if err != nil {
		if statusFor(err) != fiber.StatusInternalServerError {
			return respondError(c, h.logger, err, "Failed to generate advice")
		}
		// upstream LLM failure
		h.logger.Error("Advisor request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to generate advice",
		})
	}

	return c.JSON(dto.AdviceResponse{Answer: answer})
}
