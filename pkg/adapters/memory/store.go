// Package memory provides the default in-memory session store.
package memory

import (
	"context"
	"sync"

	"github.com/procwise/procwise/pkg/domain"
)

// Store implements ports.ProcessStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Process
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Process),
	}
}

// Save persists the process in memory.
func (s *Store) Save(ctx context.Context, sessionID string, process *domain.Process) error {
	// Deep copy to ensure isolation from later caller mutations.
	clone := process.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = clone
	return nil
}

// Load retrieves the process from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Process, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	process, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	// Copy on read so the caller can't mutate store state through the pointer.
	return process.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns sessions holding a process.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
