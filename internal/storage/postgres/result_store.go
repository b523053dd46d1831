package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"stockle/internal/domain"
	"stockle/internal/storage"
)

// ResultStore implements storage.ResultStore using PostgreSQL.
type ResultStore struct {
	pool *Pool
}

// NewResultStore creates a new ResultStore.
func NewResultStore(pool *Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ResultStore = (*ResultStore)(nil)

// Insert appends one finished-session record.
func (s *ResultStore) Insert(ctx context.Context, r *domain.SessionResult) error {
	if r == nil || r.Date == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO session_results (puzzle_date, answer_ticker, attempts, solved, finished_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query, r.Date, r.AnswerTicker, r.Attempts, r.Solved, r.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert session result: %w", err)
	}
	return nil
}

// GetByDateRange retrieves results with puzzle_date in [start, end] inclusive, ordered by date ASC.
func (s *ResultStore) GetByDateRange(ctx context.Context, start, end string) ([]*domain.SessionResult, error) {
	query := `
		SELECT puzzle_date, answer_ticker, attempts, solved, finished_at
		FROM session_results
		WHERE puzzle_date >= $1 AND puzzle_date <= $2
		ORDER BY puzzle_date ASC, finished_at ASC
	`

	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get results by date range: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// GetAll retrieves all results ordered by date ASC.
func (s *ResultStore) GetAll(ctx context.Context) ([]*domain.SessionResult, error) {
	query := `
		SELECT puzzle_date, answer_ticker, attempts, solved, finished_at
		FROM session_results
		ORDER BY puzzle_date ASC, finished_at ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all results: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func scanResults(rows pgx.Rows) ([]*domain.SessionResult, error) {
	var out []*domain.SessionResult
	for rows.Next() {
		var r domain.SessionResult
		if err := rows.Scan(&r.Date, &r.AnswerTicker, &r.Attempts, &r.Solved, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session results: %w", err)
	}
	return out, nil
}
