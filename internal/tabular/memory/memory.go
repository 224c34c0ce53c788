// Package memory is an in-process tabular store used for local runs and
// tests. Fault hooks let tests exercise the degraded-read and
// failed-write paths without a network.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/beom0515/beom-jyeon-book/internal/tabular"
)

type Store struct {
	mu     sync.Mutex
	tables map[string]tabular.Table

	// Fault hooks for tests. When set, the matching operation fails.
	FailRead  func(tableID string) error
	FailWrite func(tableID string) error

	reads  int
	writes int
}

var _ tabular.Store = (*Store)(nil)

func New() *Store {
	return &Store{tables: make(map[string]tabular.Table)}
}

func (s *Store) Read(_ context.Context, tableID string) (tabular.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailRead != nil {
		if err := s.FailRead(tableID); err != nil {
			return tabular.Table{}, err
		}
	}
	s.reads++
	t, ok := s.tables[tableID]
	if !ok {
		return tabular.Table{}, fmt.Errorf("table %q not found", tableID)
	}
	return t.Clone(), nil
}

func (s *Store) Write(_ context.Context, tableID string, t tabular.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrite != nil {
		if err := s.FailWrite(tableID); err != nil {
			return err
		}
	}
	s.writes++
	s.tables[tableID] = t.Clone()
	return nil
}

// Seed installs a table directly, bypassing the fault hooks.
func (s *Store) Seed(tableID string, t tabular.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[tableID] = t.Clone()
}

// ReadCount and WriteCount expose call counters for cache tests.
func (s *Store) ReadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *Store) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
