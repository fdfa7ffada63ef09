package service

import (
	"fin-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// ComputeAlerts reports every summary category whose spend is strictly above
// its budget, in summary order. Categories without a budget never alert. A
// zero budget alerts on any positive spend and carries no percentage.
func ComputeAlerts(summary *models.CategorySummary, budgets map[string]decimal.Decimal) []models.Alert {
	alerts := []models.Alert{}
	if summary == nil {
		return alerts
	}

	for _, category := range summary.Categories() {
		budget, ok := budgets[category]
		if !ok {
			continue
		}
		spent, _ := summary.Get(category)
		if !spent.GreaterThan(budget) {
			continue
		}

		alert := models.Alert{
			Category: category,
			Spent:    spent,
			Budget:   budget,
		}
		if budget.IsPositive() {
			pct := percentOf(spent, budget)
			alert.Percentage = &pct
		}
		alerts = append(alerts, alert)
	}
	return alerts
}
