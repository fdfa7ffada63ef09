package service

import (
	"errors"
	"math"
	"testing"

	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/repository"

	"go.uber.org/zap"
)

func newTestBudgetService() (*BudgetService, *repository.SummaryStore) {
	summaries := repository.NewSummaryStore()
	return NewBudgetService(repository.NewBudgetStore(zap.NewNop()), summaries, zap.NewNop()), summaries
}

func amount(v float64) *float64 { return &v }

func TestSetBudgetValidation(t *testing.T) {
	cases := []struct {
		name string
		req  dto.SetBudgetRequest
		ok   bool
	}{
		{"valid", dto.SetBudgetRequest{Category: "Food", Amount: amount(100)}, true},
		{"zero amount", dto.SetBudgetRequest{Category: "Food", Amount: amount(0)}, true},
		{"missing category", dto.SetBudgetRequest{Category: "  ", Amount: amount(10)}, false},
		{"missing amount", dto.SetBudgetRequest{Category: "Food"}, false},
		{"negative amount", dto.SetBudgetRequest{Category: "Food", Amount: amount(-1)}, false},
		{"nan amount", dto.SetBudgetRequest{Category: "Food", Amount: amount(math.NaN())}, false},
		{"infinite amount", dto.SetBudgetRequest{Category: "Food", Amount: amount(math.Inf(1))}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestBudgetService()
			_, err := svc.SetBudget(&tc.req)
			if tc.ok && err != nil {
				t.Fatalf("SetBudget: %v", err)
			}
			if !tc.ok {
				if !errors.Is(err, ErrInvalidBudget) {
					t.Fatalf("expected ErrInvalidBudget, got %v", err)
				}
				if len(svc.Budgets()) != 0 {
					t.Fatalf("rejected budget was stored")
				}
			}
		})
	}
}

func TestSetBudgetOverwritesAndResets(t *testing.T) {
	svc, _ := newTestBudgetService()
	for _, v := range []float64{100, 150} {
		if _, err := svc.SetBudget(&dto.SetBudgetRequest{Category: "Food", Amount: amount(v)}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.SetBudget(&dto.SetBudgetRequest{Category: " Health ", Amount: amount(50)}); err != nil {
		t.Fatal(err)
	}

	budgets := svc.Budgets()
	if len(budgets) != 2 || !budgets["Food"].Equal(dec("150")) || !budgets["Health"].Equal(dec("50")) {
		t.Fatalf("budgets = %v", budgets)
	}

	svc.ResetBudgets()
	if len(svc.Budgets()) != 0 {
		t.Fatalf("budgets not cleared: %v", svc.Budgets())
	}
}

func TestBudgetServiceInsightsUseLatestSummary(t *testing.T) {
	svc, summaries := newTestBudgetService()
	if _, err := svc.Insights(); !errors.Is(err, ErrNoBudgets) {
		t.Fatalf("expected ErrNoBudgets, got %v", err)
	}

	if _, err := svc.SetBudget(&dto.SetBudgetRequest{Category: "Food", Amount: amount(100)}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Insights(); !errors.Is(err, ErrNoExpenseData) {
		t.Fatalf("expected ErrNoExpenseData, got %v", err)
	}

	summaries.Replace(summaryOf("Food", "120"))
	insights, err := svc.Insights()
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if food := insights["Food"]; food.Status() != "over budget" || !food.Remaining.Equal(dec("-20")) {
		t.Fatalf("Food insight = %+v", food)
	}

	alerts := svc.Alerts(summaries.Latest())
	if len(alerts) != 1 || alerts[0].Category != "Food" {
		t.Fatalf("alerts = %+v", alerts)
	}
}
