// Package file persists the daily session as a small JSON file, one per
// storage key. It is the CLI player's stand-in for browser storage.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stockle/internal/domain"
	"stockle/internal/storage"
)

// persistedSession is the on-disk record shape.
type persistedSession struct {
	Date    string   `json:"date"`
	Guesses []string `json:"guesses"`
	Solved  bool     `json:"solved"`
}

// SessionStore implements storage.SessionStore on top of a directory of
// JSON files. One file per key, last write wins; writes go through a
// temp file and rename so readers never see a partial record.
type SessionStore struct {
	dir string
}

// NewSessionStore creates the directory if needed.
func NewSessionStore(dir string) (*SessionStore, error) {
	if dir == "" {
		return nil, storage.ErrInvalidInput
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &SessionStore{dir: dir}, nil
}

// path maps a storage key to a file name. Keys are caller-controlled
// identifiers, not user input, but path separators are rejected anyway.
func (s *SessionStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", storage.ErrInvalidInput
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Load returns the session stored under key. A missing file is
// ErrNotFound; an unparseable or shapeless file is ErrCorrupt.
func (s *SessionStore) Load(_ context.Context, key string) (*domain.Session, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var rec persistedSession
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	if rec.Date == "" {
		return nil, storage.ErrCorrupt
	}

	return &domain.Session{Date: rec.Date, Guesses: rec.Guesses, Solved: rec.Solved}, nil
}

// Save writes the session under key, replacing any existing record.
func (s *SessionStore) Save(_ context.Context, key string, sess *domain.Session) error {
	if sess == nil || sess.Date == "" {
		return storage.ErrInvalidInput
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(persistedSession{
		Date:    sess.Date,
		Guesses: sess.Guesses,
		Solved:  sess.Solved,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

var _ storage.SessionStore = (*SessionStore)(nil)
