// Package game holds the daily session state machine: restoring or
// creating today's session, validating and recording guesses, computing
// feedback and the terminal transitions.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"stockle/internal/dataset"
	"stockle/internal/domain"
	"stockle/internal/lookup"
	"stockle/internal/schedule"
	"stockle/internal/storage"
)

// DefaultStorageKey is the fixed per-device persistence key.
const DefaultStorageKey = "stockle-session"

// Config assembles an Engine. Index and Sessions are required.
type Config struct {
	Index    *lookup.Index
	Defs     map[domain.NumericAttr]domain.BucketDef
	Sessions storage.SessionStore
	// Results, when set, receives a record for every finished session.
	Results storage.ResultStore
	// StorageKey defaults to DefaultStorageKey.
	StorageKey string
	// Salt defaults to schedule.DefaultSalt.
	Salt string
	// Location is the reference timezone; defaults to schedule.ReferenceTimezone.
	Location *time.Location
	// Now defaults to time.Now; injectable for tests.
	Now func() time.Time
	// Logger receives non-fatal persistence notes; defaults to a
	// "[game]" stderr logger.
	Logger *log.Logger
}

// Engine drives one player's daily session. Not safe for concurrent use:
// one player, one session, one thread of control.
type Engine struct {
	index    *lookup.Index
	defs     map[domain.NumericAttr]domain.BucketDef
	sessions storage.SessionStore
	results  storage.ResultStore
	key      string
	salt     string
	loc      *time.Location
	now      func() time.Time
	logger   *log.Logger

	dayKey  string
	answer  *domain.Company
	session *domain.Session
}

// Status is a snapshot of the current session for rendering.
type Status struct {
	Date     string
	State    domain.SessionState
	Guesses  int
	MaxTries int
	// Feedback is the per-guess feedback history, chronological.
	Feedback []*domain.GuessFeedback
	// Answer is revealed only once the session is finished.
	Answer *domain.Company
}

// GuessResult is returned for every accepted guess.
type GuessResult struct {
	Feedback *domain.GuessFeedback
	State    domain.SessionState
	Guesses  int
	MaxTries int
	// Answer is revealed only when the guess finished the session.
	Answer *domain.Company
}

// NewEngine validates the configuration and restores today's session.
// An empty company list is fatal: it returns dataset.ErrEmptyDataset and
// the game cannot start.
func NewEngine(ctx context.Context, cfg Config) (*Engine, error) {
	if cfg.Index == nil || cfg.Index.Len() == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}

	e := &Engine{
		index:    cfg.Index,
		defs:     cfg.Defs,
		sessions: cfg.Sessions,
		results:  cfg.Results,
		key:      cfg.StorageKey,
		salt:     cfg.Salt,
		loc:      cfg.Location,
		now:      cfg.Now,
		logger:   cfg.Logger,
	}
	if e.key == "" {
		e.key = DefaultStorageKey
	}
	if e.salt == "" {
		e.salt = schedule.DefaultSalt
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.loc == nil {
		loc, err := schedule.LoadReferenceLocation()
		if err != nil {
			return nil, err
		}
		e.loc = loc
	}
	if e.logger == nil {
		e.logger = log.New(log.Writer(), "[game] ", log.LstdFlags)
	}

	if err := e.refresh(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// refresh recomputes today's key and answer and swaps in a fresh session
// when the date rolled over since the last call. A persisted session is
// honored only if its date is today; anything stale or corrupt is
// discarded.
func (e *Engine) refresh(ctx context.Context) error {
	key := schedule.DayKey(e.now(), e.loc)
	if e.session != nil && e.dayKey == key {
		return nil
	}

	answer, err := schedule.AnswerFor(key, e.index.Companies(), e.salt)
	if err != nil {
		return fmt.Errorf("derive answer: %w", err)
	}

	sess, err := e.sessions.Load(ctx, e.key)
	switch {
	case err == nil && sess.Date == key:
		// carry on where the player left off
	case err == nil:
		sess = domain.NewSession(key)
	case errors.Is(err, storage.ErrNotFound):
		sess = domain.NewSession(key)
	case errors.Is(err, storage.ErrCorrupt):
		e.logger.Printf("discarding corrupt session record: %v", err)
		sess = domain.NewSession(key)
	default:
		return fmt.Errorf("load session: %w", err)
	}

	e.dayKey = key
	e.answer = answer
	e.session = sess
	return nil
}

// Date returns today's puzzle date key.
func (e *Engine) Date() string {
	return e.dayKey
}

// Status returns a snapshot of the current session, recomputing the
// feedback history so callers can re-render after a reload.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	if err := e.refresh(ctx); err != nil {
		return nil, err
	}

	st := &Status{
		Date:     e.session.Date,
		State:    e.session.State(),
		Guesses:  len(e.session.Guesses),
		MaxTries: domain.MaxGuesses,
		Feedback: e.feedbackHistory(),
	}
	if e.session.Finished() {
		st.Answer = e.answer
	}
	return st, nil
}

// feedbackHistory recomputes per-guess feedback in chronological order.
func (e *Engine) feedbackHistory() []*domain.GuessFeedback {
	out := make([]*domain.GuessFeedback, 0, len(e.session.Guesses))
	for _, ticker := range e.session.Guesses {
		c, ok := e.index.ByTicker(ticker)
		if !ok {
			// Persisted ticker no longer in the list after a data
			// refresh; skip rather than fail the whole render.
			continue
		}
		out = append(out, Compare(c, e.answer, e.defs))
	}
	return out
}

// SubmitGuess resolves the input, records the guess, computes feedback
// and persists the session. Rejections (ErrSessionFinished, ErrEmptyGuess,
// ErrNoMatch, ErrDuplicateGuess) leave the session untouched.
func (e *Engine) SubmitGuess(ctx context.Context, raw string) (*GuessResult, error) {
	if err := e.refresh(ctx); err != nil {
		return nil, err
	}

	if e.session.Finished() {
		return nil, ErrSessionFinished
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyGuess
	}

	company, err := e.index.Resolve(raw)
	if err != nil {
		return nil, ErrNoMatch
	}
	if e.session.HasGuessed(company.Ticker) {
		return nil, ErrDuplicateGuess
	}

	// Stage the guess on a copy; the session only advances once the
	// store accepted it, so a failed save does not eat the guess.
	next := e.session.Clone()
	next.Guesses = append(next.Guesses, company.Ticker)
	fb := Compare(company, e.answer, e.defs)
	if fb.Correct {
		next.Solved = true
	}

	if err := e.sessions.Save(ctx, e.key, next); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	e.session = next

	if e.session.Finished() {
		e.recordResult(ctx)
	}

	res := &GuessResult{
		Feedback: fb,
		State:    e.session.State(),
		Guesses:  len(e.session.Guesses),
		MaxTries: domain.MaxGuesses,
	}
	if e.session.Finished() {
		res.Answer = e.answer
	}
	return res, nil
}

// recordResult appends the finished session to the history store.
// History is analytics, so a failed insert is logged, not surfaced.
func (e *Engine) recordResult(ctx context.Context) {
	if e.results == nil {
		return
	}
	r := &domain.SessionResult{
		Date:         e.session.Date,
		AnswerTicker: e.answer.Ticker,
		Attempts:     len(e.session.Guesses),
		Solved:       e.session.Solved,
		FinishedAt:   e.now().UnixMilli(),
	}
	if err := e.results.Insert(ctx, r); err != nil {
		e.logger.Printf("record session result: %v", err)
	}
}

// Suggestions returns autocomplete candidates for the query.
func (e *Engine) Suggestions(query string, limit int) []*domain.Company {
	return e.index.Suggest(query, limit)
}

// Session returns a copy of the current session for encoding/rendering.
func (e *Engine) Session(ctx context.Context) (*domain.Session, error) {
	if err := e.refresh(ctx); err != nil {
		return nil, err
	}
	return e.session.Clone(), nil
}

// Answer returns today's answer. Callers must not reveal it while the
// session is active.
func (e *Engine) Answer(ctx context.Context) (*domain.Company, error) {
	if err := e.refresh(ctx); err != nil {
		return nil, err
	}
	return e.answer, nil
}
