package service

import (
	"fmt"
	"math"
	"strings"

	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/models"
	"fin-analyzer/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BudgetService struct {
	budgets   *repository.BudgetStore
	summaries *repository.SummaryStore
	logger    *zap.Logger
}

func NewBudgetService(budgets *repository.BudgetStore, summaries *repository.SummaryStore, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		budgets:   budgets,
		summaries: summaries,
		logger:    logger,
	}
}

// SetBudget validates req and stores it, replacing any earlier budget for
// the same category.
func (s *BudgetService) SetBudget(req *dto.SetBudgetRequest) (*models.Budget, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidBudget)
	}
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidBudget)
	}
	if math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) || *req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidBudget)
	}

	budget := &models.Budget{
		Category: category,
		Amount:   decimal.NewFromFloat(*req.Amount),
	}
	s.budgets.Set(budget.Category, budget.Amount)

	s.logger.Info("Budget set",
		zap.String("category", budget.Category),
		zap.String("amount", budget.Amount.String()),
	)
	return budget, nil
}

func (s *BudgetService) ResetBudgets() {
	s.budgets.ClearAll()
	s.logger.Info("All budgets cleared")
}

func (s *BudgetService) Budgets() map[string]decimal.Decimal {
	return s.budgets.GetAll()
}

// Alerts compares summary against the current budgets.
func (s *BudgetService) Alerts(summary *models.CategorySummary) []models.Alert {
	alerts := ComputeAlerts(summary, s.budgets.GetAll())
	for _, a := range alerts {
		s.logger.Info("Budget exceeded",
			zap.String("category", a.Category),
			zap.String("spent", a.Spent.String()),
			zap.String("budget", a.Budget.String()),
		)
	}
	return alerts
}

// Insights combines the budgets with the latest uploaded summary.
func (s *BudgetService) Insights() (map[string]models.Insight, error) {
	return ComputeInsights(s.budgets.GetAll(), s.summaries.Latest())
}
