package models

import (
	"github.com/shopspring/decimal"
)

// CategorySummary is total spend per category. Categories keep the order in
// which they were first added, which is the order alerts are reported in.
type CategorySummary struct {
	order  []string
	totals map[string]decimal.Decimal
}

func NewCategorySummary() *CategorySummary {
	return &CategorySummary{totals: make(map[string]decimal.Decimal)}
}

// Summarize groups rows by exact category string and sums their amounts.
func Summarize(rows []CategorizedTransaction) *CategorySummary {
	s := NewCategorySummary()
	for _, row := range rows {
		s.Add(row.Category, row.Amount)
	}
	return s
}

func (s *CategorySummary) Add(category string, amount decimal.Decimal) {
	total, ok := s.totals[category]
	if !ok {
		s.order = append(s.order, category)
	}
	s.totals[category] = total.Add(amount)
}

func (s *CategorySummary) Get(category string) (decimal.Decimal, bool) {
	total, ok := s.totals[category]
	return total, ok
}

func (s *CategorySummary) Categories() []string {
	return append([]string(nil), s.order...)
}

func (s *CategorySummary) Len() int {
	return len(s.order)
}

// Total is the sum over all categories.
func (s *CategorySummary) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range s.order {
		sum = sum.Add(s.totals[c])
	}
	return sum
}

// Clone returns an independent copy.
func (s *CategorySummary) Clone() *CategorySummary {
	c := NewCategorySummary()
	for _, category := range s.order {
		c.Add(category, s.totals[category])
	}
	return c
}
