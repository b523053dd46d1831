package postgres

import (
	"context"
	"fmt"

	"stockle/internal/domain"
	"stockle/internal/storage"
)

// SessionStore implements storage.SessionStore using PostgreSQL.
// One row per storage key; Save upserts, so last write wins.
type SessionStore struct {
	pool *Pool
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(pool *Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SessionStore = (*SessionStore)(nil)

// Load returns the session stored under key. Returns ErrNotFound if no row exists.
func (s *SessionStore) Load(ctx context.Context, key string) (*domain.Session, error) {
	if key == "" {
		return nil, storage.ErrInvalidInput
	}

	query := `
		SELECT puzzle_date, guesses, solved
		FROM sessions
		WHERE storage_key = $1
	`

	var sess domain.Session
	err := s.pool.QueryRow(ctx, query, key).Scan(&sess.Date, &sess.Guesses, &sess.Solved)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess.Date == "" {
		return nil, storage.ErrCorrupt
	}
	return &sess, nil
}

// Save writes the session under key, replacing any existing row.
func (s *SessionStore) Save(ctx context.Context, key string, sess *domain.Session) error {
	if key == "" || sess == nil || sess.Date == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO sessions (storage_key, puzzle_date, guesses, solved, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (storage_key) DO UPDATE
		SET puzzle_date = EXCLUDED.puzzle_date,
		    guesses = EXCLUDED.guesses,
		    solved = EXCLUDED.solved,
		    updated_at = now()
	`

	guesses := sess.Guesses
	if guesses == nil {
		guesses = []string{}
	}

	_, err := s.pool.Exec(ctx, query, key, sess.Date, guesses, sess.Solved)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
