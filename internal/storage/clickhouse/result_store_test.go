package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockle/internal/domain"
	"stockle/internal/storage"
)

func TestResultStore_InsertAndGetAll(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewResultStore(conn)
	ctx := context.Background()

	results := []*domain.SessionResult{
		{Date: "2024-06-02", AnswerTicker: "PG", Attempts: 8, Solved: false, FinishedAt: 1717372800000},
		{Date: "2024-06-01", AnswerTicker: "ACM", Attempts: 3, Solved: true, FinishedAt: 1717286400000},
	}
	for _, r := range results {
		require.NoError(t, store.Insert(ctx, r))
	}

	got, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2024-06-01", got[0].Date)
	assert.Equal(t, "ACM", got[0].AnswerTicker)
	assert.Equal(t, 3, got[0].Attempts)
	assert.True(t, got[0].Solved)
	assert.Equal(t, int64(1717286400000), got[0].FinishedAt)

	assert.Equal(t, "2024-06-02", got[1].Date)
	assert.False(t, got[1].Solved)
	assert.Equal(t, 8, got[1].Attempts)
}

func TestResultStore_GetByDateRange(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewResultStore(conn)
	ctx := context.Background()

	for i, date := range []string{"2024-05-30", "2024-06-01", "2024-06-02", "2024-06-10"} {
		require.NoError(t, store.Insert(ctx, &domain.SessionResult{
			Date: date, AnswerTicker: "ACM", Attempts: i + 1, Solved: true, FinishedAt: int64(i),
		}))
	}

	got, err := store.GetByDateRange(ctx, "2024-06-01", "2024-06-05")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-06-01", got[0].Date)
	assert.Equal(t, "2024-06-02", got[1].Date)
}

func TestResultStore_InvalidInput(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewResultStore(conn)
	ctx := context.Background()

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, &domain.SessionResult{}), storage.ErrInvalidInput)
}
