package repository

import (
	"sync"

	"fin-analyzer/internal/models"
)

// SummaryStore holds the summary of the most recent successful upload.
type SummaryStore struct {
	mu     sync.RWMutex
	latest *models.CategorySummary
}

func NewSummaryStore() *SummaryStore {
	return &SummaryStore{}
}

// Replace supersedes whatever summary was stored before.
func (s *SummaryStore) Replace(summary *models.CategorySummary) {
	c := summary.Clone()
	s.mu.Lock()
	s.latest = c
	s.mu.Unlock()
}

// Latest returns a copy of the stored summary, or nil before the first upload.
func (s *SummaryStore) Latest() *models.CategorySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil
	}
	return s.latest.Clone()
}
