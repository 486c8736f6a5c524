// Package storage provides run history implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/ottocake/internal/domain"
	"github.com/hammamikhairi/ottocake/internal/logger"
)

// Compile-time interface check.
var _ domain.RunStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory run store. Safe for concurrent access.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*domain.Run
	log  *logger.Logger
}

// NewMemoryStore creates an empty in-memory run store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*domain.Run),
		log:  log,
	}
}

// Save records a run. Overwrites if the ID already exists.
func (s *MemoryStore) Save(ctx context.Context, run *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving run %s (score=%d, balance=%d, items=%d)", run.ID, run.Score, run.Balance, run.Items)
	cp := *run
	s.runs[run.ID] = &cp
	return nil
}

// Load retrieves a run by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		s.log.Debug("run not found: %s", id)
		return nil, domain.ErrNotFound
	}
	cp := *run
	return &cp, nil
}

// List returns every run, oldest first.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Run, 0, len(s.runs))
	for _, run := range s.runs {
		cp := *run
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FinishedAt.Equal(out[j].FinishedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].FinishedAt.Before(out[j].FinishedAt)
	})
	s.log.Debug("listing runs, count=%d", len(out))
	return out, nil
}

// Best returns the highest scoring run. Ties go to the earlier run.
func (s *MemoryStore) Best(ctx context.Context) (*domain.Run, error) {
	runs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, domain.ErrNotFound
	}
	best := runs[0]
	for _, run := range runs[1:] {
		if run.Score > best.Score {
			best = run
		}
	}
	return best, nil
}
