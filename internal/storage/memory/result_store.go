package memory

import (
	"context"
	"sort"
	"sync"

	"stockle/internal/domain"
	"stockle/internal/storage"
)

// ResultStore is an in-memory implementation of storage.ResultStore.
type ResultStore struct {
	mu   sync.RWMutex
	data []*domain.SessionResult
}

// NewResultStore creates a new in-memory result store.
func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Insert appends one finished-session record.
func (s *ResultStore) Insert(_ context.Context, r *domain.SessionResult) error {
	if r == nil || r.Date == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to prevent external mutation
	resultCopy := *r
	s.data = append(s.data, &resultCopy)
	return nil
}

// GetByDateRange retrieves results with date in [start, end] inclusive, ordered by date ASC.
func (s *ResultStore) GetByDateRange(_ context.Context, start, end string) ([]*domain.SessionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.SessionResult
	for _, r := range s.data {
		if r.Date >= start && r.Date <= end {
			resultCopy := *r
			out = append(out, &resultCopy)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// GetAll retrieves all results ordered by date ASC.
func (s *ResultStore) GetAll(ctx context.Context) ([]*domain.SessionResult, error) {
	// "YYYY-MM-DD" keys sort lexically, so the full range covers everything.
	return s.GetByDateRange(ctx, "0000-00-00", "9999-99-99")
}

var _ storage.ResultStore = (*ResultStore)(nil)
