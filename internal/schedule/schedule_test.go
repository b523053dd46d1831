package schedule

import (
	"fmt"
	"testing"
	"time"

	"stockle/internal/domain"
)

func testCompanies(n int) []*domain.Company {
	companies := make([]*domain.Company, n)
	for i := range companies {
		companies[i] = &domain.Company{
			Ticker: fmt.Sprintf("T%02d", i),
			Name:   fmt.Sprintf("Company %d", i),
		}
	}
	return companies
}

func TestPermutation_Deterministic(t *testing.T) {
	a := Permutation(50, "salt-a")
	b := Permutation(50, "salt-a")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("permutation not deterministic at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestPermutation_IsPermutation(t *testing.T) {
	perm := Permutation(100, DefaultSalt)
	seen := make(map[int]bool)
	for _, v := range perm {
		if v < 0 || v >= 100 {
			t.Fatalf("value %d out of range", v)
		}
		if seen[v] {
			t.Fatalf("value %d appears twice", v)
		}
		seen[v] = true
	}
	if len(seen) != 100 {
		t.Fatalf("expected 100 distinct values, got %d", len(seen))
	}
}

func TestPermutation_SaltChangesOrder(t *testing.T) {
	a := Permutation(50, "salt-a")
	b := Permutation(50, "salt-b")
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different salts produced identical permutations")
	}
}

func TestDayNumber(t *testing.T) {
	tests := []struct {
		key  string
		want int
	}{
		{"1970-01-01", 0},
		{"1970-01-02", 1},
		{"1969-12-31", -1},
		{"2024-01-01", 19723},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := DayNumber(tt.key)
			if err != nil {
				t.Fatalf("DayNumber(%q) failed: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("DayNumber(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestDayNumber_BadKey(t *testing.T) {
	if _, err := DayNumber("01/02/2024"); err == nil {
		t.Fatal("expected error for malformed key")
	}
}

func TestAnswerFor_Pure(t *testing.T) {
	companies := testCompanies(25)

	first, err := AnswerFor("2024-06-01", companies, DefaultSalt)
	if err != nil {
		t.Fatalf("AnswerFor failed: %v", err)
	}
	second, err := AnswerFor("2024-06-01", companies, DefaultSalt)
	if err != nil {
		t.Fatalf("AnswerFor failed: %v", err)
	}
	if first.Ticker != second.Ticker {
		t.Errorf("AnswerFor not pure: %s vs %s", first.Ticker, second.Ticker)
	}
}

func TestAnswerFor_FullCycleNoRepeats(t *testing.T) {
	companies := testCompanies(30)

	start, _ := DayNumber("2024-01-01")
	seen := make(map[string]string)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < len(companies); i++ {
		key := base.AddDate(0, 0, i).Format("2006-01-02")
		answer, err := AnswerFor(key, companies, DefaultSalt)
		if err != nil {
			t.Fatalf("AnswerFor(%s) failed: %v", key, err)
		}
		if prev, dup := seen[answer.Ticker]; dup {
			t.Fatalf("ticker %s repeated within one cycle (%s and %s)", answer.Ticker, prev, key)
		}
		seen[answer.Ticker] = key
	}
	if len(seen) != len(companies) {
		t.Errorf("cycle covered %d companies, want %d", len(seen), len(companies))
	}

	// Periodicity: one full cycle later the same answer repeats.
	day0, err := AnswerIndex(start, len(companies), DefaultSalt)
	if err != nil {
		t.Fatalf("AnswerIndex failed: %v", err)
	}
	dayN, err := AnswerIndex(start+len(companies), len(companies), DefaultSalt)
	if err != nil {
		t.Fatalf("AnswerIndex failed: %v", err)
	}
	if day0 != dayN {
		t.Errorf("expected period %d: index %d vs %d", len(companies), day0, dayN)
	}
}

func TestAnswerFor_PreEpochDate(t *testing.T) {
	companies := testCompanies(7)
	answer, err := AnswerFor("1969-06-15", companies, DefaultSalt)
	if err != nil {
		t.Fatalf("AnswerFor failed on pre-epoch date: %v", err)
	}
	if answer == nil {
		t.Fatal("expected an answer for pre-epoch date")
	}
}

func TestAnswerFor_EmptyList(t *testing.T) {
	if _, err := AnswerFor("2024-06-01", nil, DefaultSalt); err == nil {
		t.Fatal("expected ErrNoCompanies for empty list")
	}
}

func TestDayKey_DaylightSaving(t *testing.T) {
	loc, err := LoadReferenceLocation()
	if err != nil {
		t.Fatalf("LoadReferenceLocation failed: %v", err)
	}

	// 2024-03-10 is the US spring-forward date. At 06:30 UTC the eastern
	// clock reads 01:30 EST on March 10; fixed UTC-4 arithmetic would
	// agree, but at 03:00 UTC (22:00 EDT March 9) fixed-offset math with
	// the summer offset would already claim March 9 is over.
	tests := []struct {
		utc  time.Time
		want string
	}{
		{time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC), "2024-03-09"},
		{time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC), "2024-03-10"},
		{time.Date(2024, 11, 3, 4, 30, 0, 0, time.UTC), "2024-11-03"},
		{time.Date(2024, 11, 4, 4, 30, 0, 0, time.UTC), "2024-11-03"},
	}

	for _, tt := range tests {
		got := DayKey(tt.utc, loc)
		if got != tt.want {
			t.Errorf("DayKey(%s) = %s, want %s", tt.utc, got, tt.want)
		}
	}
}
