// Package schedule maps a calendar date to the day's answer company.
//
// The mapping must be bit-for-bit reproducible across runs and instances:
// a fixed salt string is mixed into a 32-bit seed, the seed drives a
// linear congruential generator, and the generator drives a Fisher-Yates
// shuffle of the company list. The shuffled order is indexed by the day
// number modulo the list length, so every company appears exactly once
// per cycle and the cycle is identical everywhere the salt matches.
//
// All constants here are part of the schedule contract. Changing any of
// them reshuffles every deployed player's calendar.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"stockle/internal/domain"
)

// DefaultSalt seeds the production shuffle.
const DefaultSalt = "stockle-v1"

// ReferenceTimezone is the timezone all players share for "today".
// Market-hours data, market-hours timezone.
const ReferenceTimezone = "America/New_York"

// Errors returned by schedule functions.
var (
	ErrNoCompanies = errors.New("company list is empty")
	ErrBadDateKey  = errors.New("date key must be YYYY-MM-DD")
)

// seedFrom mixes a salt string into a 32-bit seed (xmur3 construction).
// Deterministic and fast; collision resistance is irrelevant here.
func seedFrom(salt string) uint32 {
	h := uint32(1779033703) ^ uint32(len(salt))
	for i := 0; i < len(salt); i++ {
		h = (h ^ uint32(salt[i])) * 3432918353
		h = h<<13 | h>>19
	}
	h = (h ^ h>>16) * 2246822507
	h = (h ^ h>>13) * 3266489909
	return h ^ h>>16
}

// lcg is a 32-bit linear congruential generator with the Numerical
// Recipes constants. Not cryptographic; stream depends only on the seed.
type lcg struct {
	state uint32
}

func (g *lcg) next() uint32 {
	g.state = g.state*1664525 + 1013904223
	return g.state
}

// intn returns a value in [0, n). Modulo bias is acceptable at list sizes
// orders of magnitude below 2^32.
func (g *lcg) intn(n int) int {
	return int(g.next() % uint32(n))
}

// Permutation returns the seeded Fisher-Yates permutation of [0, n).
func Permutation(n int, salt string) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	g := &lcg{state: seedFrom(salt)}
	for i := n - 1; i > 0; i-- {
		j := g.intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// DayKey formats the calendar date of now in the given location.
// Extracting the calendar date through the location keeps the rollover
// correct across daylight-saving transitions; fixed-offset arithmetic
// would drift by an hour twice a year.
func DayKey(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("2006-01-02")
}

// DayNumber converts a "YYYY-MM-DD" key to days since 1970-01-01,
// computed in UTC. Dates before the epoch yield negative numbers.
func DayNumber(key string) (int, error) {
	t, err := time.ParseInLocation("2006-01-02", key, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDateKey, key)
	}
	return int(t.Unix() / 86400), nil
}

// AnswerIndex returns the position in the company list scheduled for the
// given day number. The modulo is wrapped to stay non-negative for any
// integer day, including pre-epoch dates.
func AnswerIndex(day, n int, salt string) (int, error) {
	if n <= 0 {
		return 0, ErrNoCompanies
	}
	perm := Permutation(n, salt)
	return perm[((day%n)+n)%n], nil
}

// AnswerFor returns the company scheduled for the date key. Pure function
// of (key, companies, salt): no clock, no stored state, no network.
func AnswerFor(key string, companies []*domain.Company, salt string) (*domain.Company, error) {
	day, err := DayNumber(key)
	if err != nil {
		return nil, err
	}
	idx, err := AnswerIndex(day, len(companies), salt)
	if err != nil {
		return nil, err
	}
	return companies[idx], nil
}

// LoadReferenceLocation loads the shared reference timezone.
func LoadReferenceLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("load reference timezone: %w", err)
	}
	return loc, nil
}
