package game

import (
	"stockle/internal/bucket"
	"stockle/internal/domain"
)

// Compare builds the per-attribute feedback for one guess against the
// answer, in the fixed tile order: sector, hq, then the five numeric
// attributes.
func Compare(guess, answer *domain.Company, defs map[domain.NumericAttr]domain.BucketDef) *domain.GuessFeedback {
	fb := &domain.GuessFeedback{
		Ticker:   guess.Ticker,
		Name:     guess.Name,
		Correct:  guess.Ticker == answer.Ticker,
		Verdicts: make([]domain.AttrVerdict, 0, domain.AttrCount),
	}

	fb.Verdicts = append(fb.Verdicts, domain.AttrVerdict{
		Attr:  "sector",
		Match: bucket.CompareExact(guess.Sector, answer.Sector),
	})
	fb.Verdicts = append(fb.Verdicts, domain.AttrVerdict{
		Attr:  "hq",
		Match: bucket.CompareExact(guess.HQ, answer.HQ),
	})

	for _, attr := range domain.NumericAttrs {
		v := bucket.CompareNumeric(guess.Numeric(attr), answer.Numeric(attr), defs[attr])
		arrow := domain.ArrowNone
		if !v.Match {
			arrow = v.Arrow
		}
		fb.Verdicts = append(fb.Verdicts, domain.AttrVerdict{
			Attr:  attr.String(),
			Match: v.Match,
			Arrow: arrow,
			Label: v.GuessBucket.Label,
		})
	}

	return fb
}
