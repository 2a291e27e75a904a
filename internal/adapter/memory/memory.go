// Package memory implements an in-memory entry storage for development and testing.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"momentum/internal/domain"
)

// Storage keeps the saved collection in memory. Entries are stored in
// encoded form so callers never share slices with it.
type Storage struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	saveErr error
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{}
}

// Ensure interfaces are met.
var _ domain.EntryStorage = (*Storage)(nil)

// Load returns the last saved collection.
func (s *Storage) Load(ctx context.Context) ([]domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	var out []domain.Entry
	if err := json.Unmarshal(s.data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces the stored collection, or returns the error set with
// FailSaves.
func (s *Storage) Save(ctx context.Context, entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	s.data = b
	s.saves++
	return nil
}

// FailSaves makes every following Save return err. A nil err restores
// normal behaviour.
func (s *Storage) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves returns the number of successful saves.
func (s *Storage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
