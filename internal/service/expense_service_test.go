package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestValidateUploadName(t *testing.T) {
	for name, ok := range map[string]bool{
		"expenses.csv":  true,
		"EXPENSES.CSV":  true,
		"":              false,
		"expenses.xlsx": false,
		"expenses":      false,
	} {
		err := ValidateUploadName(name)
		if ok && err != nil {
			t.Fatalf("%q: unexpected error %v", name, err)
		}
		if !ok && !errors.Is(err, ErrMissingInput) {
			t.Fatalf("%q: expected ErrMissingInput, got %v", name, err)
		}
	}
}

func TestProcessUpload(t *testing.T) {
	categorizer, summaries := newTestCategorizer(t, 0)
	budgets := NewBudgetService(repository.NewBudgetStore(zap.NewNop()), summaries, zap.NewNop())
	svc := NewExpenseService(categorizer, budgets, zap.NewNop())

	if _, err := budgets.SetBudget(&dto.SetBudgetRequest{Category: "Income", Amount: amount(1000)}); err != nil {
		t.Fatal(err)
	}

	csv := "Description,Amount\nSalary deposit,2500\nRestaurant dinner,-40\n"
	resp, err := svc.ProcessUpload(context.Background(), strings.NewReader(csv), "march.csv")
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if _, err := uuid.Parse(resp.UploadID); err != nil {
		t.Fatalf("upload id %q is not a uuid", resp.UploadID)
	}
	if resp.FileName != "march.csv" || len(resp.Expenses) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Expenses[0].Category != "Income" || resp.Expenses[0].Amount != 2500 {
		t.Fatalf("first expense = %+v", resp.Expenses[0])
	}
	if len(resp.Alerts) != 1 || resp.Alerts[0].Category != "Income" || *resp.Alerts[0].Percentage != 250 {
		t.Fatalf("alerts = %+v", resp.Alerts)
	}
}

func TestProcessUploadRejectsBadInput(t *testing.T) {
	categorizer, summaries := newTestCategorizer(t, 0)
	budgets := NewBudgetService(repository.NewBudgetStore(zap.NewNop()), summaries, zap.NewNop())
	svc := NewExpenseService(categorizer, budgets, zap.NewNop())

	_, err := svc.ProcessUpload(context.Background(), strings.NewReader("Description,Amount\n"), "notes.txt")
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}

	_, err = svc.ProcessUpload(context.Background(), strings.NewReader("Description,Amount\nx,1\ny,oops\n"), "a.csv")
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
	if summaries.Latest() != nil {
		t.Fatalf("a rejected upload must not replace the summary")
	}
}
