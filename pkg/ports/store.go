package ports

import (
	"context"

	"github.com/procwise/procwise/pkg/domain"
)

// ProcessStore persists the last accepted process per session.
// A session's stored process is only ever replaced by a successful turn.
type ProcessStore interface {
	// Save persists the process for a given session ID.
	Save(ctx context.Context, sessionID string, process *domain.Process) error

	// Load retrieves the process for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Process, error)

	// Delete removes the session.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of sessions holding a process.
	List(ctx context.Context) ([]string, error)
}
