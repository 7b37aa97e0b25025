// Package store persists sessions in PostgreSQL so a conversation can
// be resumed after a restart: the extracted facts, the generated site
// files, and the action history.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jkoster/webfolio/internal/facts"
	"github.com/jkoster/webfolio/internal/history"
	"github.com/jkoster/webfolio/internal/session"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Schema holds the tables the store needs. Applied with EnsureSchema on
// startup; every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id          UUID PRIMARY KEY,
    resume      TEXT NOT NULL DEFAULT '',
    facts       JSONB NOT NULL DEFAULT '{}',
    sections    JSONB NOT NULL DEFAULT '[]',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS site_files (
    session_id  UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    name        TEXT NOT NULL,
    content     TEXT NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (session_id, name)
);

CREATE TABLE IF NOT EXISTS action_history (
    id          BIGSERIAL PRIMARY KEY,
    session_id  UUID NOT NULL,
    name        TEXT NOT NULL,
    input       TEXT NOT NULL DEFAULT '',
    error       TEXT NOT NULL DEFAULT '',
    recorded_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the tables when they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SaveSession upserts a session's facts, sections, and publishable
// files in one transaction.
func (s *Store) SaveSession(ctx context.Context, state *session.State) error {
	factsJSON, err := json.Marshal(factsRecord{
		Name:    state.Facts.Facts.Name,
		Role:    state.Facts.Facts.Role,
		Bio:     state.Facts.Facts.Bio,
		Contact: state.Facts.Facts.Contact,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal facts: %w", err)
	}
	sectionsJSON, err := json.Marshal(state.Facts.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO sessions (id, resume, facts, sections)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET resume = $2, facts = $3, sections = $4, updated_at = NOW()`,
		state.ID, state.Facts.Resume, factsJSON, sectionsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	for name, content := range state.FileMap() {
		_, err = tx.Exec(ctx,
			`INSERT INTO site_files (session_id, name, content)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (session_id, name) DO UPDATE
			 SET content = $3, updated_at = NOW()`,
			state.ID, name, content,
		)
		if err != nil {
			return fmt.Errorf("failed to save file %s: %w", name, err)
		}
	}

	return tx.Commit(ctx)
}

// LoadSession restores a session: facts, sections, and the saved site
// files mapped back onto pages and shared assets, so updates on a
// resumed session edit the saved site instead of regenerating it.
func (s *Store) LoadSession(ctx context.Context, id uuid.UUID) (*session.State, error) {
	var (
		resume       string
		factsJSON    []byte
		sectionsJSON []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT resume, facts, sections FROM sessions WHERE id = $1`, id,
	).Scan(&resume, &factsJSON, &sectionsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var record factsRecord
	if err := json.Unmarshal(factsJSON, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal facts: %w", err)
	}
	var sections []string
	if err := json.Unmarshal(sectionsJSON, &sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}

	state := session.New()
	state.ID = id
	state.Facts.Resume = resume
	state.Facts.Facts = facts.Facts{
		Name:    record.Name,
		Role:    record.Role,
		Bio:     record.Bio,
		Contact: record.Contact,
	}
	if len(sections) > 0 {
		state.Facts.Sections = facts.NormalizeSections(sections)
	}

	files, err := s.LoadFiles(ctx, id)
	if err != nil {
		return nil, err
	}
	state.RestoreFiles(files)
	return state, nil
}

// LoadFiles returns a session's saved site files keyed by name.
func (s *Store) LoadFiles(ctx context.Context, id uuid.UUID) (map[string]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, content FROM site_files WHERE session_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load files: %w", err)
	}
	defer rows.Close()

	files := make(map[string]string)
	for rows.Next() {
		var name, content string
		if err := rows.Scan(&name, &content); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files[name] = content
	}
	return files, rows.Err()
}

// AppendHistory stores one action-history entry.
func (s *Store) AppendHistory(ctx context.Context, sessionID uuid.UUID, entry history.Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO action_history (session_id, name, input, error, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		sessionID, entry.Name, entry.Input, entry.Err, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// History returns a session's recorded actions, oldest first.
func (s *Store) History(ctx context.Context, sessionID uuid.UUID) ([]history.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, input, error, recorded_at
		 FROM action_history WHERE session_id = $1 ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var e history.Entry
		if err := rows.Scan(&e.Name, &e.Input, &e.Err, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// factsRecord is the JSON shape facts are stored as.
type factsRecord struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Bio     string `json:"bio"`
	Contact string `json:"contact"`
}
