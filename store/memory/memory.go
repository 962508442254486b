// Package memory provides an in-memory voucher.Source for tests and dev.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/warp/voucher-engine/tabular"
	"github.com/warp/voucher-engine/voucher"
)

// =============================================================================
// MEMORY SOURCE - In-memory input tables (for testing/dev)
// =============================================================================

type Source struct {
	mu     sync.RWMutex
	tables map[string]*tabular.Table
}

var _ voucher.Source = (*Source)(nil)

func New() *Source {
	return &Source{tables: make(map[string]*tabular.Table)}
}

// Add registers a table under a workbook name. The stored copy is
// independent of the caller's table.
func (s *Source) Add(name string, t *tabular.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = t.Clone()
}

// List returns the registered names in sorted order so that discovery
// is deterministic.
func (s *Source) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.tables))
	for n := range s.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Read returns a copy of one table.
func (s *Source) Read(name string) (*tabular.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tabular.ErrTableNotFound, name)
	}
	return t.Clone(), nil
}
