package handlers

import (
	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/service"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	categorizer *service.CategorizerService
}

func NewHealthHandler(categorizer *service.CategorizerService) *HealthHandler {
	return &HealthHandler{categorizer: categorizer}
}

// Index godoc
// @Summary Service banner
// @Tags health
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *HealthHandler) Index(c *fiber.Ctx) error {
	return c.SendString("AI Financial Analyzer Backend")
}

// Health godoc
// @Summary Liveness and model status
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	labels := h.categorizer.Labels()
	if len(labels) == 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{
			Status: "model unavailable",
		})
	}
	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		ModelLabels: labels,
	})
}
