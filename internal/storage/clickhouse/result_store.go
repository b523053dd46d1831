package clickhouse

import (
	"context"
	"fmt"

	"stockle/internal/domain"
	"stockle/internal/storage"
)

// ResultStore implements storage.ResultStore using ClickHouse. Intended
// for fleet-scale analytics over finished sessions; inserts are
// append-only and uniqueness is not enforced (MergeTree semantics).
type ResultStore struct {
	conn *Conn
}

// NewResultStore creates a new ResultStore.
func NewResultStore(conn *Conn) *ResultStore {
	return &ResultStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ResultStore = (*ResultStore)(nil)

// Insert appends one finished-session record.
func (s *ResultStore) Insert(ctx context.Context, r *domain.SessionResult) error {
	if r == nil || r.Date == "" {
		return storage.ErrInvalidInput
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO session_results (
			puzzle_date, answer_ticker, attempts, solved, finished_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	solved := uint8(0)
	if r.Solved {
		solved = 1
	}
	if err := batch.Append(r.Date, r.AnswerTicker, uint8(r.Attempts), solved, uint64(r.FinishedAt)); err != nil {
		return fmt.Errorf("append to batch: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByDateRange retrieves results with puzzle_date in [start, end] inclusive, ordered by date ASC.
func (s *ResultStore) GetByDateRange(ctx context.Context, start, end string) ([]*domain.SessionResult, error) {
	query := `
		SELECT puzzle_date, answer_ticker, attempts, solved, finished_at
		FROM session_results
		WHERE puzzle_date >= ? AND puzzle_date <= ?
		ORDER BY puzzle_date ASC, finished_at ASC
	`

	rows, err := s.conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get results by date range: %w", err)
	}
	defer rows.Close()

	var out []*domain.SessionResult
	for rows.Next() {
		var (
			r          domain.SessionResult
			attempts   uint8
			solved     uint8
			finishedAt uint64
		)
		if err := rows.Scan(&r.Date, &r.AnswerTicker, &attempts, &solved, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}
		r.Attempts = int(attempts)
		r.Solved = solved != 0
		r.FinishedAt = int64(finishedAt)
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session results: %w", err)
	}
	return out, nil
}

// GetAll retrieves all results ordered by date ASC.
func (s *ResultStore) GetAll(ctx context.Context) ([]*domain.SessionResult, error) {
	return s.GetByDateRange(ctx, "0000-00-00", "9999-99-99")
}
