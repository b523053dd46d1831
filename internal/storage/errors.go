package storage

import "errors"

// Storage errors shared by all backends.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned when a persisted record fails to parse.
	// Callers recover by discarding the record and starting fresh;
	// corruption is never fatal to the player.
	ErrCorrupt = errors.New("persisted record is corrupt")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
