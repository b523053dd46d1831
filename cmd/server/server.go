package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"stockle/internal/domain"
	"stockle/internal/game"
	"stockle/internal/lookup"
	"stockle/internal/observability"
	"stockle/internal/share"
	"stockle/internal/storage"
)

// Server serves the game API. Sessions are keyed per device: every
// request may carry ?device=<id>, and each device gets its own engine
// backed by its own storage key.
type Server struct {
	index    *lookup.Index
	defs     map[domain.NumericAttr]domain.BucketDef
	sessions storage.SessionStore
	results  storage.ResultStore
	salt     string
	loc      *time.Location
	metrics  *observability.Metrics
	logger   *log.Logger

	mu      sync.Mutex
	engines map[string]*engineEntry

	live *liveHub
}

// engineEntry serializes access to one device's engine. game.Engine is
// single-threaded by contract, so every call holds the entry mutex.
type engineEntry struct {
	mu  sync.Mutex
	eng *game.Engine
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.instrument("/api/state", s.handleState))
	mux.HandleFunc("/api/guess", s.instrument("/api/guess", s.handleGuess))
	mux.HandleFunc("/api/suggest", s.instrument("/api/suggest", s.handleSuggest))
	mux.HandleFunc("/api/share", s.instrument("/api/share", s.handleShare))
	mux.HandleFunc("/api/live", s.handleLive)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	return mux
}

// instrument records request duration by path and status.
func (s *Server) instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)
		s.metrics.RequestDuration.WithLabelValues(path, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// engineFor returns (creating on first use) the engine entry for the
// request's device.
func (s *Server) engineFor(ctx context.Context, r *http.Request) (*engineEntry, error) {
	device := deviceID(r)

	s.mu.Lock()
	entry, ok := s.engines[device]
	if !ok {
		entry = &engineEntry{}
		s.engines[device] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	if entry.eng == nil {
		eng, err := game.NewEngine(ctx, game.Config{
			Index:      s.index,
			Defs:       s.defs,
			Sessions:   s.sessions,
			Results:    s.results,
			StorageKey: game.DefaultStorageKey + ":" + device,
			Salt:       s.salt,
			Location:   s.loc,
			Logger:     s.logger,
		})
		if err != nil {
			entry.mu.Unlock()
			return nil, err
		}
		entry.eng = eng
	}
	return entry, nil
}

// deviceID extracts the device identifier, defaulting to a shared one.
// Characters outside [a-zA-Z0-9_-] are stripped so the value is safe as
// part of a storage key.
func deviceID(r *http.Request) string {
	raw := r.URL.Query().Get("device")
	var sb strings.Builder
	for _, ch := range raw {
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '-' || ch == '_' {
			sb.WriteRune(ch)
		}
	}
	id := sb.String()
	if id == "" {
		return "default"
	}
	return id
}

// ---- JSON views -------------------------------------------------------

type verdictView struct {
	Attr  string `json:"attr"`
	Match bool   `json:"match"`
	Arrow string `json:"arrow,omitempty"`
	Label string `json:"label,omitempty"`
}

type feedbackView struct {
	Ticker   string        `json:"ticker"`
	Name     string        `json:"name"`
	Correct  bool          `json:"correct"`
	Verdicts []verdictView `json:"verdicts"`
}

type companyView struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Sector string `json:"sector,omitempty"`
	HQ     string `json:"hq,omitempty"`
}

type stateView struct {
	Date     string         `json:"date"`
	State    string         `json:"state"`
	Guesses  int            `json:"guesses"`
	MaxTries int            `json:"maxTries"`
	Feedback []feedbackView `json:"feedback"`
	Answer   *companyView   `json:"answer,omitempty"`
}

type guessView struct {
	Feedback feedbackView `json:"feedback"`
	State    string       `json:"state"`
	Guesses  int          `json:"guesses"`
	MaxTries int          `json:"maxTries"`
	Answer   *companyView `json:"answer,omitempty"`
}

func toFeedbackView(fb *domain.GuessFeedback) feedbackView {
	out := feedbackView{Ticker: fb.Ticker, Name: fb.Name, Correct: fb.Correct}
	for _, v := range fb.Verdicts {
		out.Verdicts = append(out.Verdicts, verdictView{
			Attr:  v.Attr,
			Match: v.Match,
			Arrow: string(v.Arrow),
			Label: v.Label,
		})
	}
	return out
}

func toCompanyView(c *domain.Company) *companyView {
	if c == nil {
		return nil
	}
	return &companyView{Ticker: c.Ticker, Name: c.Name, Sector: c.Sector, HQ: c.HQ}
}

func toStateView(st *game.Status) stateView {
	out := stateView{
		Date:     st.Date,
		State:    string(st.State),
		Guesses:  st.Guesses,
		MaxTries: st.MaxTries,
		Feedback: make([]feedbackView, 0, len(st.Feedback)),
		Answer:   toCompanyView(st.Answer),
	}
	for _, fb := range st.Feedback {
		out.Feedback = append(out.Feedback, toFeedbackView(fb))
	}
	return out
}

// ---- Handlers ---------------------------------------------------------

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	entry, err := s.engineFor(r.Context(), r)
	if err != nil {
		s.internalError(w, "load state", err)
		return
	}
	defer entry.mu.Unlock()

	st, err := entry.eng.Status(r.Context())
	if err != nil {
		s.internalError(w, "load state", err)
		return
	}
	writeJSON(w, http.StatusOK, toStateView(st))
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req struct {
		Guess string `json:"guess"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	entry, err := s.engineFor(r.Context(), r)
	if err != nil {
		s.internalError(w, "submit guess", err)
		return
	}
	defer entry.mu.Unlock()

	res, err := entry.eng.SubmitGuess(r.Context(), req.Guess)
	if err != nil {
		s.rejectGuess(w, err)
		return
	}

	s.metrics.GuessesAccepted.Inc()
	switch res.State {
	case domain.StateSolved:
		s.metrics.SessionsSolved.Inc()
		s.metrics.SolveAttempts.Observe(float64(res.Guesses))
	case domain.StateExhausted:
		s.metrics.SessionsExhausted.Inc()
	}

	view := guessView{
		Feedback: toFeedbackView(res.Feedback),
		State:    string(res.State),
		Guesses:  res.Guesses,
		MaxTries: res.MaxTries,
		Answer:   toCompanyView(res.Answer),
	}
	writeJSON(w, http.StatusOK, view)

	// Push the refreshed state to live-feed subscribers for this device.
	if st, err := entry.eng.Status(r.Context()); err == nil {
		s.live.broadcast(deviceID(r), toStateView(st))
	}
}

// rejectGuess maps engine rejections to HTTP errors. Anything
// unrecognized is a persistence or scheduler failure, so it is a 500.
func (s *Server) rejectGuess(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrSessionFinished):
		s.metrics.GuessesRejected.WithLabelValues("invalid_state").Inc()
		writeError(w, http.StatusConflict, "invalid_state", "session is already finished")
	case errors.Is(err, game.ErrEmptyGuess):
		s.metrics.GuessesRejected.WithLabelValues("empty_input").Inc()
		writeError(w, http.StatusBadRequest, "empty_input", "guess is empty")
	case errors.Is(err, game.ErrNoMatch):
		s.metrics.GuessesRejected.WithLabelValues("no_match").Inc()
		writeError(w, http.StatusNotFound, "no_match", "no company matches the guess")
	case errors.Is(err, game.ErrDuplicateGuess):
		s.metrics.GuessesRejected.WithLabelValues("duplicate_guess").Inc()
		writeError(w, http.StatusConflict, "duplicate_guess", "company was already guessed")
	default:
		s.internalError(w, "submit guess", err)
	}
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	query := r.URL.Query().Get("q")
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	s.metrics.SuggestionQueries.Inc()

	views := make([]companyView, 0, limit)
	for _, c := range s.index.Suggest(query, limit) {
		views = append(views, *toCompanyView(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": views})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	entry, err := s.engineFor(r.Context(), r)
	if err != nil {
		s.internalError(w, "render share", err)
		return
	}
	defer entry.mu.Unlock()

	sess, err := entry.eng.Session(r.Context())
	if err != nil {
		s.internalError(w, "render share", err)
		return
	}
	answer, err := entry.eng.Answer(r.Context())
	if err != nil {
		s.internalError(w, "render share", err)
		return
	}

	text := share.Render(sess, answer, s.index, s.defs)
	code, err := share.Code(sess, answer, s.index, s.defs)
	if err != nil {
		s.internalError(w, "render share", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text, "code": code})
}

// ---- Live feed --------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is served to local/native UIs, not browsers with cookies,
	// so cross-origin upgrades are accepted.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn is the write side of a WebSocket connection.
type wsConn interface {
	WriteJSON(v any) error
	Close() error
}

// liveConn serializes writes to one connection. gorilla/websocket
// allows at most one concurrent writer per connection, and both the
// hub broadcast and the subscribe handler write to it.
type liveConn struct {
	mu   sync.Mutex
	conn wsConn
}

func (c *liveConn) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// liveHub tracks WebSocket subscribers per device.
type liveHub struct {
	mu    sync.Mutex
	conns map[string]map[*liveConn]struct{}
}

func newLiveHub() *liveHub {
	return &liveHub{conns: make(map[string]map[*liveConn]struct{})}
}

func (h *liveHub) add(device string, lc *liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[device] == nil {
		h.conns[device] = make(map[*liveConn]struct{})
	}
	h.conns[device][lc] = struct{}{}
}

func (h *liveHub) remove(device string, lc *liveConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[device], lc)
	if len(h.conns[device]) == 0 {
		delete(h.conns, device)
	}
}

// broadcast pushes the state to every subscriber of the device. Write
// failures drop the connection; the read loop will clean it up.
func (h *liveHub) broadcast(device string, state stateView) {
	h.mu.Lock()
	subs := make([]*liveConn, 0, len(h.conns[device]))
	for lc := range h.conns[device] {
		subs = append(subs, lc)
	}
	h.mu.Unlock()

	for _, lc := range subs {
		if err := lc.send(state); err != nil {
			lc.conn.Close()
		}
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	device := deviceID(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("live upgrade failed: %v", err)
		return
	}

	lc := &liveConn{conn: conn}
	s.live.add(device, lc)
	s.metrics.LiveClients.Inc()
	s.logger.Printf("live client connected (device=%s)", device)

	// Send the current state immediately so the client starts in sync.
	if entry, err := s.engineFor(r.Context(), r); err == nil {
		st, serr := entry.eng.Status(r.Context())
		entry.mu.Unlock()
		if serr == nil {
			if werr := lc.send(toStateView(st)); werr != nil {
				s.logger.Printf("live initial push failed: %v", werr)
			}
		}
	}

	go func() {
		defer func() {
			s.live.remove(device, lc)
			s.metrics.LiveClients.Dec()
			conn.Close()
			s.logger.Printf("live client disconnected (device=%s)", device)
		}()
		// Drain control/client frames; any read error ends the session.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ---- Response helpers -------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left to do.
		return
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Printf("%s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
