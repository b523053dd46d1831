package memory

import (
	"context"
	"errors"
	"testing"

	"stockle/internal/domain"
	"stockle/internal/storage"
)

func TestSessionStore_SaveAndLoad(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := &domain.Session{
		Date:    "2024-06-01",
		Guesses: []string{"ACM", "GLX"},
		Solved:  false,
	}

	if err := store.Save(ctx, "device1", sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx, "device1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.Date != "2024-06-01" {
		t.Errorf("Date mismatch: got %s", got.Date)
	}
	if len(got.Guesses) != 2 || got.Guesses[0] != "ACM" {
		t.Errorf("Guesses mismatch: got %v", got.Guesses)
	}
}

func TestSessionStore_LoadMissing(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Load(context.Background(), "nobody")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStore_LastWriteWins(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	first := &domain.Session{Date: "2024-06-01", Guesses: []string{"ACM"}}
	second := &domain.Session{Date: "2024-06-02", Guesses: nil}

	if err := store.Save(ctx, "device1", first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, "device1", second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx, "device1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Date != "2024-06-02" {
		t.Errorf("expected last write to win, got date %s", got.Date)
	}
}

func TestSessionStore_CopiesOnSaveAndLoad(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := &domain.Session{Date: "2024-06-01", Guesses: []string{"ACM"}}
	if err := store.Save(ctx, "device1", sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Mutating the saved-in value must not affect the stored record.
	sess.Guesses[0] = "XXX"

	got, err := store.Load(ctx, "device1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Guesses[0] != "ACM" {
		t.Errorf("store exposed caller mutation: %v", got.Guesses)
	}

	// Mutating a loaded value must not affect later loads.
	got.Guesses[0] = "YYY"
	again, _ := store.Load(ctx, "device1")
	if again.Guesses[0] != "ACM" {
		t.Errorf("store exposed loaded-value mutation: %v", again.Guesses)
	}
}

func TestSessionStore_InvalidInput(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	if err := store.Save(ctx, "", &domain.Session{Date: "2024-06-01"}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty key: expected ErrInvalidInput, got %v", err)
	}
	if err := store.Save(ctx, "device1", nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil session: expected ErrInvalidInput, got %v", err)
	}
	if _, err := store.Load(ctx, ""); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty key load: expected ErrInvalidInput, got %v", err)
	}
}
