// Package memory is an in-memory tabular store used for tests and local
// development. It mirrors the Google adapter's behavior, including header
// rows, and supports injected read failures so loader policies can be
// exercised without a network.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "financehq/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	order  []string
	grids  map[string][][]string
	broken map[string]error
}

// Ensure interface conformance
var _ ports.Database = (*Store)(nil)

func New() *Store {
	return &Store{grids: map[string][][]string{}, broken: map[string]error{}}
}

// SetSheet creates or replaces a sheet wholesale, header row included.
func (s *Store) SetSheet(name string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grids[name]; !ok {
		s.order = append(s.order, name)
	}
	s.grids[name] = cloneGrid(rows)
}

// FailSheet makes every read of the named sheet return err. Passing nil
// clears the injected failure.
func (s *Store) FailSheet(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.broken, name)
		return
	}
	s.broken[name] = err
}

// Rows returns a copy of the sheet's current grid, for test assertions.
func (s *Store) Rows(name string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneGrid(s.grids[name])
}

func (s *Store) PrimarySheet(_ context.Context) (ports.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) == 0 {
		return nil, fmt.Errorf("store has no sheets")
	}
	return &sheet{store: s, name: s.order[0]}, nil
}

func (s *Store) Sheet(_ context.Context, name string) (ports.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grids[name]; !ok {
		return nil, fmt.Errorf("%q: %w", name, ports.ErrSheetNotFound)
	}
	return &sheet{store: s, name: name}, nil
}

func (s *Store) SheetNames(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...), nil
}

func (s *Store) CreateSheet(_ context.Context, name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grids[name]; ok {
		return fmt.Errorf("sheet %q already exists", name)
	}
	s.order = append(s.order, name)
	grid := [][]string{}
	if len(header) > 0 {
		grid = append(grid, append([]string(nil), header...))
	}
	s.grids[name] = grid
	return nil
}

type sheet struct {
	store *Store
	name  string
}

func (sh *sheet) ReadAll(_ context.Context) ([][]string, error) {
	sh.store.mu.Lock()
	defer sh.store.mu.Unlock()
	if err := sh.store.broken[sh.name]; err != nil {
		return nil, err
	}
	grid, ok := sh.store.grids[sh.name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", sh.name, ports.ErrSheetNotFound)
	}
	return cloneGrid(grid), nil
}

func (sh *sheet) AppendRow(_ context.Context, row []string) error {
	sh.store.mu.Lock()
	defer sh.store.mu.Unlock()
	if err := sh.store.broken[sh.name]; err != nil {
		return err
	}
	grid, ok := sh.store.grids[sh.name]
	if !ok {
		return fmt.Errorf("%q: %w", sh.name, ports.ErrSheetNotFound)
	}
	sh.store.grids[sh.name] = append(grid, append([]string(nil), row...))
	return nil
}

func cloneGrid(grid [][]string) [][]string {
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = append([]string(nil), row...)
	}
	return out
}
