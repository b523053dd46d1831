package storage

import (
	"context"

	"stockle/internal/domain"
)

// SessionStore persists the single daily session per player device.
// One record per key, last write wins; stale-date expiry is the
// caller's concern (a record whose date is not today is discarded).
type SessionStore interface {
	// Load returns the session stored under key. Returns ErrNotFound if
	// no record exists and ErrCorrupt if the record fails to parse.
	Load(ctx context.Context, key string) (*domain.Session, error)

	// Save writes the session under key, replacing any existing record.
	Save(ctx context.Context, key string, s *domain.Session) error
}

// ResultStore keeps the append-only history of finished sessions for
// statistics. Finished sessions are immutable.
type ResultStore interface {
	// Insert appends one finished-session record.
	Insert(ctx context.Context, r *domain.SessionResult) error

	// GetByDateRange retrieves results with date in [start, end]
	// (inclusive, "YYYY-MM-DD" keys), ordered by date ASC.
	GetByDateRange(ctx context.Context, start, end string) ([]*domain.SessionResult, error)

	// GetAll retrieves all results ordered by date ASC.
	GetAll(ctx context.Context) ([]*domain.SessionResult, error)
}
