package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fin-analyzer/internal/dto"
	"fin-analyzer/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpenseService struct {
	categorizer *CategorizerService
	budgets     *BudgetService
	logger      *zap.Logger
}

func NewExpenseService(categorizer *CategorizerService, budgets *BudgetService, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		categorizer: categorizer,
		budgets:     budgets,
		logger:      logger,
	}
}

// ValidateUploadName rejects uploads without a file name or with an
// extension other than .csv.
func ValidateUploadName(fileName string) error {
	if strings.TrimSpace(fileName) == "" {
		return fmt.Errorf("%w: no file selected", ErrMissingInput)
	}
	if !strings.EqualFold(filepath.Ext(fileName), ".csv") {
		return fmt.Errorf("%w: only .csv files are accepted", ErrMissingInput)
	}
	return nil
}

// ProcessUpload parses the CSV, categorizes it (replacing the latest
// summary) and checks the result against the budgets.
func (s *ExpenseService) ProcessUpload(ctx context.Context, src io.Reader, fileName string) (*dto.UploadResponse, error) {
	if err := ValidateUploadName(fileName); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := ParseCSV(src)
	if err != nil {
		return nil, err
	}

	categorized, summary, err := s.categorizer.Categorize(rows)
	if err != nil {
		return nil, err
	}
	alerts := s.budgets.Alerts(summary)

	uploadID := uuid.New()
	s.logger.Info("Upload processed",
		zap.String("upload_id", uploadID.String()),
		zap.String("file_name", fileName),
		zap.Int("rows", len(rows)),
		zap.Int("alerts", len(alerts)),
	)

	return &dto.UploadResponse{
		UploadID: uploadID.String(),
		FileName: fileName,
		Expenses: toTransactionResponses(categorized),
		Summary:  toCategoryTotals(summary),
		Alerts:   ToAlertResponses(alerts),
	}, nil
}

func toTransactionResponses(rows []models.CategorizedTransaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, len(rows))
	for i, row := range rows {
		out[i] = dto.TransactionResponse{
			Description: row.Description,
			Amount:      row.Amount.InexactFloat64(),
			Category:    row.Category,
		}
	}
	return out
}

func toCategoryTotals(summary *models.CategorySummary) []dto.CategoryTotalResponse {
	out := make([]dto.CategoryTotalResponse, 0, summary.Len())
	for _, category := range summary.Categories() {
		total, _ := summary.Get(category)
		out = append(out, dto.CategoryTotalResponse{
			Category: category,
			Total:    total.InexactFloat64(),
		})
	}
	return out
}

func ToAlertResponses(alerts []models.Alert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = dto.AlertResponse{
			Category: a.Category,
			Spent:    a.Spent.InexactFloat64(),
			Budget:   a.Budget.InexactFloat64(),
		}
		if a.Percentage != nil {
			pct := a.Percentage.Round(2).InexactFloat64()
			out[i].Percentage = &pct
		}
	}
	return out
}

func ToInsightResponses(insights map[string]models.Insight) map[string]dto.InsightResponse {
	out := make(map[string]dto.InsightResponse, len(insights))
	for category, in := range insights {
		out[category] = dto.InsightResponse{
			Budget:          in.Budget.InexactFloat64(),
			Spent:           in.Spent.InexactFloat64(),
			Remaining:       in.Remaining.InexactFloat64(),
			PercentageSpent: in.PercentageSpent.Round(2).InexactFloat64(),
		}
	}
	return out
}
