package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fin-analyzer/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeChat struct {
	prompt string
	answer string
	err    error
}

func (f *fakeChat) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func TestAdviseDisabled(t *testing.T) {
	svc := NewAdvisorService(nil, repository.NewBudgetStore(zap.NewNop()), repository.NewSummaryStore(), zap.NewNop())
	if svc.Enabled() {
		t.Fatalf("advisor without a model must be disabled")
	}
	if _, err := svc.Advise(context.Background(), "how am I doing?"); !errors.Is(err, ErrAdvisorDisabled) {
		t.Fatalf("expected ErrAdvisorDisabled, got %v", err)
	}
}

func TestAdviseBuildsPrompt(t *testing.T) {
	budgets := repository.NewBudgetStore(zap.NewNop())
	budgets.Set("Food", dec("45"))
	summaries := repository.NewSummaryStore()
	summaries.Replace(summaryOf("Food", "50", "Income", "2500"))

	chat := &fakeChat{answer: "Eat out less."}
	svc := NewAdvisorService(chat, budgets, summaries, zap.NewNop())

	answer, err := svc.Advise(context.Background(), "  where can I   save? ")
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if answer != "Eat out less." {
		t.Fatalf("answer = %q", answer)
	}
	for _, want := range []string{"- Food: 50.00", "- Income: 2500.00", "Budgets:", "Over budget:", "Question: where can I save?"} {
		if !strings.Contains(chat.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, chat.prompt)
		}
	}
}

func TestAdviseErrors(t *testing.T) {
	chat := &fakeChat{err: errors.New("upstream down")}
	svc := NewAdvisorService(chat, repository.NewBudgetStore(zap.NewNop()), repository.NewSummaryStore(), zap.NewNop())

	if _, err := svc.Advise(context.Background(), "   "); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if _, err := svc.Advise(context.Background(), "hi"); err == nil || err.Error() != "upstream down" {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestBuildSpendingContextEmpty(t *testing.T) {
	got := BuildSpendingContext(nil, map[string]decimal.Decimal{})
	if !strings.Contains(got, "No transactions") || !strings.Contains(got, "No budgets") {
		t.Fatalf("context = %q", got)
	}
}
