package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fin-analyzer/internal/ml"
	"fin-analyzer/internal/models"
	"fin-analyzer/internal/repository"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	columnDescription = "description"
	columnAmount      = "amount"
)

type CategorizerService struct {
	model     *ml.Model
	cache     *ristretto.Cache[string, string]
	summaries *repository.SummaryStore
	logger    *zap.Logger
}

// NewCategorizerService wires the categorizer. cacheSize bounds the
// description → category memo; zero disables it.
func NewCategorizerService(model *ml.Model, summaries *repository.SummaryStore, cacheSize int64, logger *zap.Logger) (*CategorizerService, error) {
	s := &CategorizerService{
		model:     model,
		summaries: summaries,
		logger:    logger,
	}
	if cacheSize > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
			NumCounters: cacheSize * 10,
			MaxCost:     cacheSize,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create prediction cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

func (s *CategorizerService) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// Labels returns the categories the loaded model can assign.
func (s *CategorizerService) Labels() []string {
	return s.model.Labels()
}

// ParseCSV reads the whole upload. Only the Description and Amount columns
// are required (matched case-insensitively); other columns are ignored. One
// non-numeric amount fails the entire batch.
func ParseCSV(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: CSV file is empty", ErrMissingInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", ErrMalformedRow, err)
	}

	descIdx, amountIdx := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch {
		case name == columnDescription && descIdx < 0:
			descIdx = i
		case name == columnAmount && amountIdx < 0:
			amountIdx = i
		}
	}
	if descIdx < 0 || amountIdx < 0 {
		return nil, fmt.Errorf("%w: CSV must contain Description and Amount columns", ErrMissingInput)
	}

	var rows []models.Transaction
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedRow, line, err)
		}

		raw := cell(record, amountIdx)
		amount, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: amount %q is not numeric", ErrMalformedRow, line, raw)
		}
		rows = append(rows, models.Transaction{
			Description: sanitizeUTF8(cell(record, descIdx)),
			Amount:      amount,
		})
	}
	return rows, nil
}

func cell(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

// Categorize labels every row in input order, sums amounts per category and
// makes that summary the latest one.
func (s *CategorizerService) Categorize(rows []models.Transaction) ([]models.CategorizedTransaction, *models.CategorySummary, error) {
	if !s.model.Ready() {
		return nil, nil, ErrModelUnavailable
	}

	labels, err := s.predict(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	out := make([]models.CategorizedTransaction, len(rows))
	for i, row := range rows {
		out[i] = models.CategorizedTransaction{Transaction: row, Category: labels[i]}
	}

	summary := models.Summarize(out)
	s.summaries.Replace(summary)

	s.logger.Info("Transactions categorized",
		zap.Int("rows", len(rows)),
		zap.Int("categories", summary.Len()),
	)
	return out, summary, nil
}

// predict answers from the cache where it can and sends the misses through
// the model as a single batch.
func (s *CategorizerService) predict(rows []models.Transaction) ([]string, error) {
	labels := make([]string, len(rows))
	var missIdx []int
	var missDesc []string

	for i, row := range rows {
		if s.cache != nil {
			if label, ok := s.cache.Get(row.Description); ok {
				labels[i] = label
				continue
			}
		}
		missIdx = append(missIdx, i)
		missDesc = append(missDesc, row.Description)
	}

	if len(missDesc) == 0 {
		return labels, nil
	}

	predicted, err := s.model.Predict(missDesc)
	if err != nil {
		return nil, err
	}
	for k, i := range missIdx {
		labels[i] = predicted[k]
		if s.cache != nil {
			s.cache.Set(missDesc[k], predicted[k], 1)
		}
	}

	s.logger.Debug("Predictions computed",
		zap.Int("cached", len(rows)-len(missDesc)),
		zap.Int("predicted", len(missDesc)),
	)
	return labels, nil
}
