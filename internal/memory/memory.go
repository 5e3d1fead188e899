package memory

import (
	"context"
	"sync"

	"masareef/internal/core"
)

// Store is the in-memory ledger backend used in development and tests.
type Store struct {
	mu    sync.Mutex
	items map[int64][]core.Transaction
}

func New() *Store {
	return &Store{items: make(map[int64][]core.Transaction)}
}

// Available implements ledger.Store
func (s *Store) Available(_ context.Context) bool {
	return true
}

// Append implements ledger.Store
func (s *Store) Append(_ context.Context, userID int64, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UserID = userID

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[userID] = append(s.items[userID], t)
	return nil
}

// LoadAll implements ledger.Store
func (s *Store) LoadAll(_ context.Context, userID int64) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.items[userID]...)
	if out == nil {
		out = []core.Transaction{}
	}
	return out, nil
}
