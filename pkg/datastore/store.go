package datastore

import (
	"fmt"
	"log/slog"
	"sync"
)

// NotFoundError is returned by Get when no table exists under the key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("'%s'에 해당하는 데이터를 찾을 수 없습니다", e.Key)
}

// Store holds every table collected during one conversation session,
// keyed by a caller-built composite key. It lives for the session only;
// nothing is persisted across sessions.
//
// Add overwrites silently. Idempotence is the caller's job (the
// collection tools probe Has before re-adding).
type Store struct {
	mu     sync.RWMutex
	tables map[string]*Table
	order  []string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		tables: make(map[string]*Table),
	}
}

// Add stores a table under key, replacing any existing entry.
func (s *Store) Add(key string, table *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tables[key]; !exists {
		s.order = append(s.order, key)
	}
	s.tables[key] = table
	slog.Info("데이터 추가됨", "key", key, "rows", len(table.Rows))
}

// Has reports whether a table exists under key.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[key]
	return ok
}

// Get returns the table stored under key, or a NotFoundError.
func (s *Store) Get(key string) (*Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return t, nil
}

// Keys returns all stored keys in insertion order. The planner feeds this
// list into its decision context, so determinism matters more than order
// semantics.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]string, len(s.order))
	copy(cp, s.order)
	return cp
}

// Len returns the number of stored tables.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

// Tables returns a snapshot map of every stored table, used to bind the
// expression-evaluation namespace.
func (s *Store) Tables() map[string]*Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make(map[string]*Table, len(s.tables))
	for k, v := range s.tables {
		cp[k] = v
	}
	return cp
}
