package models

import (
	"github.com/shopspring/decimal"
)

// Budget is the ceiling a user set for one category.
type Budget struct {
	Category string
	Amount   decimal.Decimal
}

// Alert reports a category whose spend went over its budget. Percentage is
// nil when the budget is zero.
type Alert struct {
	Category   string
	Spent      decimal.Decimal
	Budget     decimal.Decimal
	Percentage *decimal.Decimal
}

type Insight struct {
	Budget          decimal.Decimal
	Spent           decimal.Decimal
	Remaining       decimal.Decimal
	PercentageSpent decimal.Decimal
}

// Status mirrors the budget tracker wording used in reports.
func (i Insight) Status() string {
	if i.Spent.GreaterThan(i.Budget) {
		return "over budget"
	}
	return "under budget"
}
