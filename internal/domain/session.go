package domain

// MaxGuesses is the per-day guess budget.
const MaxGuesses = 8

// SessionState represents the lifecycle state of a daily session.
type SessionState string

const (
	StateActive    SessionState = "ACTIVE"
	StateSolved    SessionState = "SOLVED"
	StateExhausted SessionState = "EXHAUSTED"
)

// String returns the string representation of SessionState.
func (s SessionState) String() string {
	return string(s)
}

// IsValid checks if the state is a valid value.
func (s SessionState) IsValid() bool {
	return s == StateActive || s == StateSolved || s == StateExhausted
}

// Session is the single mutable unit of a day's play: the puzzle date,
// the accepted guesses in chronological order and the solved flag.
// Corresponds to the persisted record `{date, guesses, solved}`.
type Session struct {
	Date    string   // puzzle day, "YYYY-MM-DD" in the reference timezone
	Guesses []string // accepted tickers, oldest first, no duplicates
	Solved  bool
}

// NewSession creates a fresh active session for the given day.
func NewSession(date string) *Session {
	return &Session{Date: date, Guesses: nil, Solved: false}
}

// State derives the lifecycle state from guesses and the solved flag.
func (s *Session) State() SessionState {
	switch {
	case s.Solved:
		return StateSolved
	case len(s.Guesses) >= MaxGuesses:
		return StateExhausted
	default:
		return StateActive
	}
}

// Finished reports whether the session reached a terminal state.
func (s *Session) Finished() bool {
	return s.State() != StateActive
}

// HasGuessed reports whether the ticker is already in the guess list.
func (s *Session) HasGuessed(ticker string) bool {
	for _, g := range s.Guesses {
		if g == ticker {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so stores can hand out sessions without
// exposing their internal record to mutation.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Guesses = append([]string(nil), s.Guesses...)
	return &cp
}

// SessionResult is the append-only record of a finished session, kept
// for statistics. Corresponds to the session_results table.
type SessionResult struct {
	Date         string // puzzle day, "YYYY-MM-DD"
	AnswerTicker string
	Attempts     int
	Solved       bool
	FinishedAt   int64 // Unix timestamp in milliseconds
}
