package service

import (
	"context"
	"fmt"
	"strings"

	"fin-analyzer/internal/models"
	"fin-analyzer/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxQuestionLength = 1000

// AdvisorService answers free-form questions about the latest upload with
// an LLM. It is disabled when no ChatModel is configured.
type AdvisorService struct {
	llm       ChatModel
	budgets   *repository.BudgetStore
	summaries *repository.SummaryStore
	logger    *zap.Logger
}

func NewAdvisorService(llm ChatModel, budgets *repository.BudgetStore, summaries *repository.SummaryStore, logger *zap.Logger) *AdvisorService {
	return &AdvisorService{
		llm:       llm,
		budgets:   budgets,
		summaries: summaries,
		logger:    logger,
	}
}

func (s *AdvisorService) Enabled() bool {
	return s.llm != nil
}

func (s *AdvisorService) Advise(ctx context.Context, question string) (string, error) {
	if !s.Enabled() {
		return "", ErrAdvisorDisabled
	}
	question = sanitizeUTF8(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", ErrMissingInput)
	}
	if r := []rune(question); len(r) > maxQuestionLength {
		question = string(r[:maxQuestionLength])
	}

	prompt := fmt.Sprintf("%s\nQuestion: %s", BuildSpendingContext(s.summaries.Latest(), s.budgets.GetAll()), question)
	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Info("Advice generated",
		zap.Int("question_length", len(question)),
		zap.Int("answer_length", len(answer)),
	)
	return answer, nil
}

// BuildSpendingContext renders the summary, budgets and alerts as plain text
// for the LLM prompt.
func BuildSpendingContext(summary *models.CategorySummary, budgets map[string]decimal.Decimal) string {
	var b strings.Builder

	if summary == nil {
		b.WriteString("No transactions have been uploaded yet.\n")
	} else {
		b.WriteString("Spending by category (latest upload):\n")
		for _, category := range summary.Categories() {
			total, _ := summary.Get(category)
			fmt.Fprintf(&b, "- %s: %s\n", category, total.StringFixed(2))
		}
		fmt.Fprintf(&b, "Total: %s\n", summary.Total().StringFixed(2))
	}

	if len(budgets) == 0 {
		b.WriteString("No budgets are set.\n")
	} else {
		b.WriteString("Budgets:\n")
		for _, category := range sortedKeys(budgets) {
			fmt.Fprintf(&b, "- %s: %s\n", category, budgets[category].StringFixed(2))
		}
	}

	if alerts := ComputeAlerts(summary, budgets); len(alerts) > 0 {
		b.WriteString("Over budget:\n")
		for _, a := range alerts {
			if a.Percentage != nil {
				fmt.Fprintf(&b, "- %s: spent %s of %s (%s%%)\n", a.Category, a.Spent.StringFixed(2), a.Budget.StringFixed(2), a.Percentage.StringFixed(1))
			} else {
				fmt.Fprintf(&b, "- %s: spent %s with a zero budget\n", a.Category, a.Spent.StringFixed(2))
			}
		}
	}

	return b.String()
}
