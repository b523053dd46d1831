// Package stats aggregates finished-session history into the familiar
// played/win-rate/streak/distribution summary.
package stats

import (
	"sort"

	"stockle/internal/domain"
	"stockle/internal/schedule"
)

// Summary is the aggregate over a result history.
type Summary struct {
	Played  int
	Wins    int
	WinRate float64 // 0..1
	// CurrentStreak counts consecutive solved days ending at the most
	// recent played day; MaxStreak is the best run ever.
	CurrentStreak int
	MaxStreak     int
	// Distribution[i] counts wins solved in i+1 attempts.
	Distribution [domain.MaxGuesses]int
}

// Compute aggregates results. Input order does not matter. With
// multiple records per date (several devices feeding one history) the
// record with the latest FinishedAt wins, regardless of how the store
// ordered ties.
func Compute(results []*domain.SessionResult) *Summary {
	ordered := append([]*domain.SessionResult(nil), results...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].FinishedAt < ordered[j].FinishedAt
	})

	byDate := make(map[string]*domain.SessionResult, len(ordered))
	for _, r := range ordered {
		byDate[r.Date] = r
	}

	dedup := make([]*domain.SessionResult, 0, len(byDate))
	for _, r := range byDate {
		dedup = append(dedup, r)
	}
	sort.Slice(dedup, func(i, j int) bool { return dedup[i].Date < dedup[j].Date })

	s := &Summary{}
	streak := 0
	prevDay := 0
	for i, r := range dedup {
		s.Played++
		if r.Solved {
			s.Wins++
			if r.Attempts >= 1 && r.Attempts <= domain.MaxGuesses {
				s.Distribution[r.Attempts-1]++
			}
		}

		day, err := schedule.DayNumber(r.Date)
		if err != nil {
			// Unparseable date in history; treat as a gap.
			day = prevDay + 2
		}

		switch {
		case !r.Solved:
			streak = 0
		case i > 0 && day == prevDay+1:
			streak++
		default:
			streak = 1
		}
		if streak > s.MaxStreak {
			s.MaxStreak = streak
		}
		prevDay = day
	}
	s.CurrentStreak = streak

	if s.Played > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Played)
	}
	return s
}
