package handlers

import (
	"fin-analyzer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// Upload godoc
// @Summary Upload a transactions CSV
// @Description Categorize every row of a CSV with Description and Amount columns, replace the latest summary and report budget alerts
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /upload [post]
func (h *ExpenseHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file part",
		})
	}
	if err := service.ValidateUploadName(file.Filename); err != nil {
		return respondError(c, h.logger, err, "Invalid file")
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	resp, err := h.expenseService.ProcessUpload(c.UserContext(), src, file.Filename)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to process file")
	}

	return c.JSON(resp)
}
