package handlers

import (
	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	budgetService *service.BudgetService
	logger        *zap.Logger
}

func NewBudgetHandler(budgetService *service.BudgetService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
		logger:        logger,
	}
}

// SetBudget godoc
// @Summary Set a category budget
// @Description Create or overwrite the budget for one category
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.SetBudgetRequest true "Budget"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} map[string]string
// @Router /set_budget [post]
func (h *BudgetHandler) SetBudget(c *fiber.Ctx) error {
	var req dto.SetBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	budget, err := h.budgetService.SetBudget(&req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to set budget")
	}

	return c.JSON(dto.MessageResponse{
		Message: "Budget set for " + budget.Category + ": " + budget.Amount.String(),
	})
}

// ResetBudgets godoc
// @Summary Remove all budgets
// @Tags budgets
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /reset_budgets [post]
func (h *BudgetHandler) ResetBudgets(c *fiber.Ctx) error {
	h.budgetService.ResetBudgets()
	return c.JSON(dto.MessageResponse{
		Message: "All budgets have been reset",
	})
}

// GetBudgets godoc
// @Summary List budgets
// @Description Current category to budget mapping
// @Tags budgets
// @Produce json
// @Success 200 {object} map[string]number
// @Router /get_budgets [get]
func (h *BudgetHandler) GetBudgets(c *fiber.Ctx) error {
	budgets := h.budgetService.Budgets()
	out := make(map[string]float64, len(budgets))
	for category, amount := range budgets {
		out[category] = amount.InexactFloat64()
	}
	return c.JSON(out)
}

// ExpenseInsights godoc
// @Summary Budget insights
// @Description Compare every budget with the latest uploaded summary
// @Tags budgets
// @Produce json
// @Success 200 {object} map[string]dto.InsightResponse
// @Failure 400 {object} map[string]string
// @Router /expense_insights [get]
func (h *BudgetHandler) ExpenseInsights(c *fiber.Ctx) error {
	insights, err := h.budgetService.Insights()
	if err != nil {
		return respondError(c, h.logger, err, "Failed to compute insights")
	}
	return c.JSON(service.ToInsightResponses(insights))
}
