// Package file provides a filesystem-backed session store.
// It stores one JSON file per session in a configured directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/procwise/procwise/pkg/domain"
)

// Store implements ports.ProcessStore using the local filesystem.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".procwise/sessions".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".procwise", "sessions")
	}
	return &Store{BasePath: basePath}
}

// Save persists the process to a JSON file.
func (f *Store) Save(ctx context.Context, sessionID string, process *domain.Process) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}

	// Ensure directory exists
	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(process, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal process: %w", err)
	}

	if err := os.WriteFile(f.path(sessionID), data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves the process from a JSON file.
func (f *Store) Load(ctx context.Context, sessionID string) (*domain.Process, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	data, err := os.ReadFile(f.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var process domain.Process
	if err := json.Unmarshal(data, &process); err != nil {
		return nil, fmt.Errorf("failed to unmarshal process: %w", err)
	}
	return &process, nil
}

// Delete removes the session file.
func (f *Store) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}

	err := os.Remove(f.path(sessionID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns all stored session IDs.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			sessions = append(sessions, name[:len(name)-len(".json")])
		}
	}
	return sessions, nil
}

func (f *Store) path(sessionID string) string {
	return filepath.Join(f.BasePath, sessionID+".json")
}
