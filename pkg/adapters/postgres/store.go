// Package postgres provides a PostgreSQL-backed session store using pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/ports"
)

const defaultTable = "procwise_sessions"

// Connect opens a pgx connection pool and pings it to ensure connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	config.MaxConns = 10
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Store persists one accepted process per session in a single table,
// keyed by session ID with the process stored as JSONB.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

var _ ports.ProcessStore = (*Store)(nil)

// Option defines a functional option for configuring the Store.
type Option func(*Store)

// WithTable overrides the table name (default: "procwise_sessions").
func WithTable(table string) Option {
	return func(s *Store) {
		s.table = table
	}
}

// NewStore creates the session table if needed and returns the store.
func NewStore(ctx context.Context, pool *pgxpool.Pool, opts ...Option) (*Store, error) {
	s := &Store{pool: pool, table: defaultTable}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensuring session table: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	session_id TEXT PRIMARY KEY,
	process JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`, s.table))
	return err
}

func (s *Store) Save(ctx context.Context, sessionID string, process *domain.Process) error {
	data, err := json.Marshal(process)
	if err != nil {
		return fmt.Errorf("failed to serialize process: %w", err)
	}
	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
INSERT INTO %s (session_id, process, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (session_id) DO UPDATE SET process = EXCLUDED.process, updated_at = EXCLUDED.updated_at
`, s.table), sessionID, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save session %q: %w", sessionID, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Process, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT process FROM %s WHERE session_id = $1
`, s.table), sessionID)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session %q: %w", sessionID, err)
	}

	var process domain.Process
	if err := json.Unmarshal(data, &process); err != nil {
		return nil, fmt.Errorf("failed to deserialize process: %w", err)
	}
	return &process, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
DELETE FROM %s WHERE session_id = $1
`, s.table), sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session %q: %w", sessionID, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
SELECT session_id FROM %s ORDER BY session_id
`, s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
