package game

import "errors"

// Guess rejection taxonomy. All are recoverable: the caller shows a
// short message and the session is left untouched.
var (
	// ErrSessionFinished is returned when the session is already solved
	// or exhausted.
	ErrSessionFinished = errors.New("session already finished")

	// ErrEmptyGuess is returned when the trimmed input is empty.
	ErrEmptyGuess = errors.New("guess is empty")

	// ErrNoMatch is returned when input resolves to no company.
	ErrNoMatch = errors.New("no matching company")

	// ErrDuplicateGuess is returned when the resolved company was
	// already guessed today.
	ErrDuplicateGuess = errors.New("company already guessed")
)
