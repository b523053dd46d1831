// Package dataset loads the curated company list produced by the offline
// refresh job and applies the defensive input contract: records missing
// name or ticker are dropped, numeric fields are coerced to numbers or
// null, tickers are trimmed and uppercased.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"stockle/internal/domain"
)

// ErrEmptyDataset is returned when no valid company survives validation.
// This is the fatal data_unavailable condition: the game cannot start.
var ErrEmptyDataset = errors.New("company dataset is empty")

// rawCompany mirrors the external record shape. Field types are loose on
// purpose: the producer is not trusted to emit clean JSON.
type rawCompany struct {
	Name      any `json:"name"`
	Ticker    any `json:"ticker"`
	Sector    any `json:"sector"`
	HQ        any `json:"hq"`
	Founded   any `json:"founded"`
	Price     any `json:"price"`
	MarketCap any `json:"marketCap"`
	Employees any `json:"employees"`
	PE        any `json:"pe"`
}

// Load reads and validates the company list, preserving input order.
// Returns ErrEmptyDataset if nothing valid remains.
func Load(r io.Reader) ([]*domain.Company, error) {
	var raw []rawCompany
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode company list: %w", err)
	}

	seen := make(map[string]bool)
	companies := make([]*domain.Company, 0, len(raw))
	for _, rec := range raw {
		name := coerceString(rec.Name)
		ticker := strings.ToUpper(coerceString(rec.Ticker))
		if name == "" || ticker == "" {
			continue
		}
		if seen[ticker] {
			// Ticker is the unique key; first record wins.
			continue
		}
		seen[ticker] = true

		companies = append(companies, &domain.Company{
			Ticker:    ticker,
			Name:      name,
			Sector:    coerceString(rec.Sector),
			HQ:        coerceString(rec.HQ),
			Founded:   coerceNumber(rec.Founded),
			Price:     coerceNumber(rec.Price),
			MarketCap: coerceNumber(rec.MarketCap),
			Employees: coerceNumber(rec.Employees),
			PE:        coerceNumber(rec.PE),
		})
	}

	if len(companies) == 0 {
		return nil, ErrEmptyDataset
	}
	return companies, nil
}

// LoadFile loads the company list from a JSON file.
func LoadFile(path string) ([]*domain.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open company list: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// LoadMeta parses the refresh-job metadata file. Informational only.
func LoadMeta(r io.Reader) (*domain.DatasetMeta, error) {
	var meta domain.DatasetMeta
	if err := json.NewDecoder(r).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode dataset metadata: %w", err)
	}
	return &meta, nil
}

// LoadMetaFile parses the metadata file from disk.
func LoadMetaFile(path string) (*domain.DatasetMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset metadata: %w", err)
	}
	defer f.Close()
	return LoadMeta(f)
}

// coerceString trims string values and stringifies nothing else.
func coerceString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceNumber accepts JSON numbers and numeric strings; everything else
// (null, booleans, objects, unparseable text) becomes unknown.
func coerceNumber(v any) *float64 {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return &f
	case float64:
		return &n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}
