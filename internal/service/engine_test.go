package service

import (
	"errors"
	"reflect"
	"testing"

	"fin-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func summaryOf(pairs ...string) *models.CategorySummary {
	s := models.NewCategorySummary()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Add(pairs[i], dec(pairs[i+1]))
	}
	return s
}

func TestComputeAlerts(t *testing.T) {
	cases := []struct {
		name    string
		summary *models.CategorySummary
		budgets map[string]decimal.Decimal
		want    []string
		pct     []string // "" means no percentage
	}{
		{
			name:    "over budget",
			summary: summaryOf("Food", "50"),
			budgets: map[string]decimal.Decimal{"Food": dec("45")},
			want:    []string{"Food"},
			pct:     []string{"111.11"},
		},
		{
			name:    "under budget",
			summary: summaryOf("Food", "50"),
			budgets: map[string]decimal.Decimal{"Food": dec("60")},
		},
		{
			name:    "exactly at budget",
			summary: summaryOf("Food", "60"),
			budgets: map[string]decimal.Decimal{"Food": dec("60")},
		},
		{
			name:    "zero budget",
			summary: summaryOf("Food", "10"),
			budgets: map[string]decimal.Decimal{"Food": decimal.Zero},
			want:    []string{"Food"},
			pct:     []string{""},
		},
		{
			name:    "no matching budget",
			summary: summaryOf("Health", "500"),
			budgets: map[string]decimal.Decimal{"Food": dec("1")},
		},
		{
			name:    "summary order",
			summary: summaryOf("Utilities", "300", "Food", "20", "Health", "90"),
			budgets: map[string]decimal.Decimal{"Health": dec("45"), "Utilities": dec("100"), "Food": dec("50")},
			want:    []string{"Utilities", "Health"},
			pct:     []string{"300", "200"},
		},
		{
			name:    "nil summary",
			budgets: map[string]decimal.Decimal{"Food": dec("1")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := ComputeAlerts(tc.summary, tc.budgets)
			var got []string
			for _, a := range alerts {
				got = append(got, a.Category)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("alert categories = %v, want %v", got, tc.want)
			}
			for i, a := range alerts {
				switch {
				case tc.pct[i] == "" && a.Percentage != nil:
					t.Fatalf("%s: expected no percentage, got %s", a.Category, a.Percentage)
				case tc.pct[i] != "" && a.Percentage == nil:
					t.Fatalf("%s: expected percentage %s, got none", a.Category, tc.pct[i])
				case tc.pct[i] != "" && !a.Percentage.Round(2).Equal(dec(tc.pct[i])):
					t.Fatalf("%s: percentage = %s, want %s", a.Category, a.Percentage.Round(2), tc.pct[i])
				}
			}
		})
	}
}

func TestComputeInsights(t *testing.T) {
	budgets := map[string]decimal.Decimal{"Food": dec("100"), "Health": dec("50"), "Travel": decimal.Zero}
	summary := summaryOf("Food", "120", "Groceries", "80")

	got, err := ComputeInsights(budgets, summary)
	if err != nil {
		t.Fatalf("ComputeInsights: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d insights, want one per budget: %v", len(got), got)
	}
	if _, ok := got["Groceries"]; ok {
		t.Fatalf("summary-only category must be excluded")
	}

	food := got["Food"]
	if !food.Remaining.Equal(dec("-20")) || !food.PercentageSpent.Equal(dec("120")) || !food.Spent.Equal(dec("120")) {
		t.Fatalf("Food = %+v", food)
	}
	health := got["Health"]
	if !health.Spent.IsZero() || !health.Remaining.Equal(dec("50")) || !health.PercentageSpent.IsZero() {
		t.Fatalf("Health = %+v", health)
	}
	travel := got["Travel"]
	if !travel.PercentageSpent.IsZero() || !travel.Remaining.IsZero() {
		t.Fatalf("zero budget must report zero percentage: %+v", travel)
	}
}

func TestComputeInsightsPreconditions(t *testing.T) {
	if _, err := ComputeInsights(nil, summaryOf("Food", "1")); !errors.Is(err, ErrNoBudgets) {
		t.Fatalf("expected ErrNoBudgets, got %v", err)
	}
	budgets := map[string]decimal.Decimal{"Food": dec("1")}
	if _, err := ComputeInsights(budgets, nil); !errors.Is(err, ErrNoExpenseData) {
		t.Fatalf("expected ErrNoExpenseData, got %v", err)
	}
	// an upload with zero rows still counts as data
	if _, err := ComputeInsights(budgets, models.NewCategorySummary()); err != nil {
		t.Fatalf("empty summary should be accepted: %v", err)
	}
}
