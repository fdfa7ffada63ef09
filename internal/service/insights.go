package service

import (
	"fin-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// ComputeInsights reports, for every budgeted category, how much of the
// budget the latest summary used. Budgets drive the iteration: categories
// that only appear in the summary are left out.
func ComputeInsights(budgets map[string]decimal.Decimal, summary *models.CategorySummary) (map[string]models.Insight, error) {
	if len(budgets) == 0 {
		return nil, ErrNoBudgets
	}
	if summary == nil {
		return nil, ErrNoExpenseData
	}

	out := make(map[string]models.Insight, len(budgets))
	for category, budget := range budgets {
		spent, ok := summary.Get(category)
		if !ok {
			spent = decimal.Zero
		}
		pct := decimal.Zero
		if budget.IsPositive() {
			pct = percentOf(spent, budget)
		}
		out[category] = models.Insight{
			Budget:          budget,
			Spent:           spent,
			Remaining:       budget.Sub(spent),
			PercentageSpent: pct,
		}
	}
	return out, nil
}
