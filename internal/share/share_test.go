package share

import (
	"errors"
	"strings"
	"testing"

	"stockle/internal/bucket"
	"stockle/internal/domain"
	"stockle/internal/lookup"
)

func f(v float64) *float64 { return &v }

// Two companies with nothing in common and one clone of the answer so a
// guess can hit all seven or zero attributes.
func testFixtures() (*lookup.Index, *domain.Company) {
	answer := &domain.Company{
		Ticker: "ACM", Name: "Acme Corp", Sector: "Industrials", HQ: "Reno, NV",
		Founded: f(1985), Price: f(42), MarketCap: f(12e9), Employees: f(5400), PE: f(18),
	}
	allWrong := &domain.Company{
		Ticker: "HOO", Name: "Hooli", Sector: "Technology", HQ: "Palo Alto, CA",
		Founded: f(2004), Price: f(310), MarketCap: f(700e9), Employees: f(60000), PE: f(72),
	}
	return lookup.NewIndex([]*domain.Company{answer, allWrong}), answer
}

func TestRender_SolvedInTwo(t *testing.T) {
	idx, answer := testFixtures()
	sess := &domain.Session{
		Date:    "2024-06-01",
		Guesses: []string{"HOO", "ACM"},
		Solved:  true,
	}

	got := Render(sess, answer, idx, bucket.DefaultDefs())
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	// header + 2 tile rows + code + reference URL
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "Stockle 2024-06-01 — Solved in 2/8" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != strings.Repeat(TileMiss, 7) {
		t.Errorf("first row should be all dark tiles: %q", lines[1])
	}
	if lines[2] != strings.Repeat(TileMatch, 7) {
		t.Errorf("second row should be all green tiles: %q", lines[2])
	}
	if lines[4] != ReferenceURL {
		t.Errorf("trailing line = %q", lines[4])
	}
}

func TestRender_Unsolved(t *testing.T) {
	idx, answer := testFixtures()
	sess := &domain.Session{
		Date:    "2024-06-01",
		Guesses: []string{"HOO"},
		Solved:  false,
	}

	got := Render(sess, answer, idx, bucket.DefaultDefs())
	if !strings.Contains(got, "X/8") {
		t.Errorf("unsolved header missing X/8:\n%s", got)
	}
}

func TestRender_ChronologicalOrder(t *testing.T) {
	idx, answer := testFixtures()
	sess := &domain.Session{
		Date:    "2024-06-01",
		Guesses: []string{"ACM", "HOO"}, // solved first is impossible in play, but order must still hold
		Solved:  true,
	}

	got := Render(sess, answer, idx, bucket.DefaultDefs())
	lines := strings.Split(got, "\n")
	if lines[1] != strings.Repeat(TileMatch, 7) {
		t.Errorf("oldest guess must come first: %q", lines[1])
	}
}

func TestCode_RoundTrip(t *testing.T) {
	idx, answer := testFixtures()
	sess := &domain.Session{
		Date:    "2024-06-01",
		Guesses: []string{"HOO", "ACM"},
		Solved:  true,
	}

	code, err := Code(sess, answer, idx, bucket.DefaultDefs())
	if err != nil {
		t.Fatalf("Code failed: %v", err)
	}

	res, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !res.Solved || res.Attempts != 2 {
		t.Errorf("decoded %+v", res)
	}
	if res.Masks[0] != 0 {
		t.Errorf("first mask = %08b, want all misses", res.Masks[0])
	}
	if res.Masks[1] != 0x7f {
		t.Errorf("second mask = %08b, want all matches", res.Masks[1])
	}
}

func TestRender_VanishedTickerKeepsAttemptCount(t *testing.T) {
	// A persisted guess whose ticker left the dataset still counts: the
	// header, the tile rows and the code must all report 3 attempts.
	idx, answer := testFixtures()
	sess := &domain.Session{
		Date:    "2024-06-01",
		Guesses: []string{"HOO", "GON", "ACM"}, // GON is no longer listed
		Solved:  true,
	}

	got := Render(sess, answer, idx, bucket.DefaultDefs())
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines (3 tile rows), got %d:\n%s", len(lines), got)
	}
	if lines[0] != "Stockle 2024-06-01 — Solved in 3/8" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != strings.Repeat(TileMiss, 7) {
		t.Errorf("vanished guess row should be all dark tiles: %q", lines[2])
	}

	code, err := Code(sess, answer, idx, bucket.DefaultDefs())
	if err != nil {
		t.Fatalf("Code failed: %v", err)
	}
	res, err := Decode(code)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if res.Attempts != len(sess.Guesses) {
		t.Errorf("encoded attempts = %d, want %d", res.Attempts, len(sess.Guesses))
	}
	if res.Masks[1] != 0 {
		t.Errorf("vanished guess mask = %08b, want all misses", res.Masks[1])
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []string{
		"",
		"0OIl",     // invalid base58 characters
		"2g",       // too short
	}
	for _, code := range tests {
		if _, err := Decode(code); !errors.Is(err, ErrBadCode) {
			t.Errorf("Decode(%q) error = %v, want ErrBadCode", code, err)
		}
	}
}
