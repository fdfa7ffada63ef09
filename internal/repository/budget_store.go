package repository

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetStore is the in-memory category → budget mapping. Each call is
// atomic on its own; a sequence of calls is not.
type BudgetStore struct {
	mu      sync.RWMutex
	budgets map[string]decimal.Decimal
	logger  *zap.Logger
}

func NewBudgetStore(logger *zap.Logger) *BudgetStore {
	return &BudgetStore{
		budgets: make(map[string]decimal.Decimal),
		logger:  logger,
	}
}

// Set overwrites any existing budget for category.
func (s *BudgetStore) Set(category string, amount decimal.Decimal) {
	s.mu.Lock()
	s.budgets[category] = amount
	size := len(s.budgets)
	s.mu.Unlock()

	s.logger.Debug("Budget stored",
		zap.String("category", category),
		zap.String("amount", amount.String()),
		zap.Int("budgets", size),
	)
}

func (s *BudgetStore) ClearAll() {
	s.mu.Lock()
	s.budgets = make(map[string]decimal.Decimal)
	s.mu.Unlock()
}

// GetAll returns a snapshot that callers may keep and modify freely.
func (s *BudgetStore) GetAll() map[string]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]decimal.Decimal, len(s.budgets))
	for category, amount := range s.budgets {
		out[category] = amount
	}
	return out
}
