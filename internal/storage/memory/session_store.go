package memory

import (
	"context"
	"sync"

	"stockle/internal/domain"
	"stockle/internal/storage"
)

// SessionStore is an in-memory implementation of storage.SessionStore.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Session // keyed by device key
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		data: make(map[string]*domain.Session),
	}
}

// Load returns the session stored under key. Returns ErrNotFound if no record exists.
func (s *SessionStore) Load(_ context.Context, key string) (*domain.Session, error) {
	if key == "" {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.data[key]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return sess.Clone(), nil
}

// Save writes the session under key, replacing any existing record.
func (s *SessionStore) Save(_ context.Context, key string, sess *domain.Session) error {
	if key == "" || sess == nil || sess.Date == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = sess.Clone()
	return nil
}

var _ storage.SessionStore = (*SessionStore)(nil)
