// Package lookup resolves guess input against the company list.
//
// The index is built once from the validated list and never mutated, so
// sessions and schedulers can share it freely.
package lookup

import (
	"errors"
	"strings"

	"stockle/internal/domain"
	"stockle/internal/normalize"
)

// Errors returned by lookup functions.
var (
	// ErrNoMatch is returned when input resolves to no company.
	ErrNoMatch = errors.New("no matching company")
)

// Index provides O(1) resolution by ticker and normalized name plus
// ordered fuzzy suggestions.
type Index struct {
	companies []*domain.Company
	byTicker  map[string]*domain.Company // key: uppercase ticker
	byName    map[string]*domain.Company // key: normalized name

	// precomputed per company, in list order, for suggestion scans
	normNames   []string
	normTickers []string
}

// NewIndex builds an index over the validated company list. Later
// entries with a duplicate ticker or normalized name are unreachable by
// that key; validation upstream guarantees ticker uniqueness.
func NewIndex(companies []*domain.Company) *Index {
	idx := &Index{
		companies:   companies,
		byTicker:    make(map[string]*domain.Company, len(companies)),
		byName:      make(map[string]*domain.Company, len(companies)),
		normNames:   make([]string, len(companies)),
		normTickers: make([]string, len(companies)),
	}
	for i, c := range companies {
		ticker := strings.ToUpper(c.Ticker)
		name := normalize.Normalize(c.Name)
		if _, exists := idx.byTicker[ticker]; !exists {
			idx.byTicker[ticker] = c
		}
		if _, exists := idx.byName[name]; !exists {
			idx.byName[name] = c
		}
		idx.normNames[i] = name
		idx.normTickers[i] = strings.ToLower(ticker)
	}
	return idx
}

// Companies returns the indexed list in original order.
func (idx *Index) Companies() []*domain.Company {
	return idx.companies
}

// Len returns the number of indexed companies.
func (idx *Index) Len() int {
	return len(idx.companies)
}

// ByTicker resolves an exact ticker, case-insensitive.
func (idx *Index) ByTicker(ticker string) (*domain.Company, bool) {
	c, ok := idx.byTicker[strings.ToUpper(strings.TrimSpace(ticker))]
	return c, ok
}

// ByName resolves an exact normalized name.
func (idx *Index) ByName(name string) (*domain.Company, bool) {
	c, ok := idx.byName[normalize.Normalize(name)]
	return c, ok
}

// Resolve maps free-text input to a company: exact ticker first, then
// exact normalized name, then a fuzzy scan that is accepted only when it
// yields exactly one candidate. Returns ErrNoMatch otherwise.
func (idx *Index) Resolve(raw string) (*domain.Company, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil, ErrNoMatch
	}
	if c, ok := idx.ByTicker(input); ok {
		return c, nil
	}
	if c, ok := idx.ByName(input); ok {
		return c, nil
	}
	if sugg := idx.Suggest(input, 2); len(sugg) == 1 {
		return sugg[0], nil
	}
	return nil, ErrNoMatch
}

// Suggest returns companies whose normalized name or ticker starts with
// the normalized query, in original list order, followed by those that
// merely contain it, capped at limit. A blank query yields nothing.
func (idx *Index) Suggest(query string, limit int) []*domain.Company {
	q := normalize.Normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}

	var prefix, contains []*domain.Company
	for i, c := range idx.companies {
		name, ticker := idx.normNames[i], idx.normTickers[i]
		switch {
		case strings.HasPrefix(name, q) || strings.HasPrefix(ticker, q):
			prefix = append(prefix, c)
		case strings.Contains(name, q) || strings.Contains(ticker, q):
			contains = append(contains, c)
		}
	}

	out := append(prefix, contains...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
