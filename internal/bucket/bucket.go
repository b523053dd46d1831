// Package bucket classifies numeric attributes into ordered ranges and
// produces the per-attribute match/arrow feedback.
package bucket

import (
	"math"

	"stockle/internal/domain"
)

// Bucket is the classification of one value against a definition.
// Index is domain.UnknownBucketIndex for absent/NaN values, else the
// 0-based position in the definition.
type Bucket struct {
	Label string
	Index int
}

// Unknown is the sentinel bucket for absent values.
var Unknown = Bucket{Label: "N/A", Index: domain.UnknownBucketIndex}

// Of classifies a value: the first bucket whose exclusive upper bound
// strictly exceeds the value wins, so a value exactly on a bound belongs
// to the next bucket. The final bound is +Inf and catches everything.
func Of(value *float64, def domain.BucketDef) Bucket {
	if value == nil || math.IsNaN(*value) {
		return Unknown
	}
	for i, b := range def.Bounds {
		if *value < b.Upper {
			return Bucket{Label: b.Label, Index: i}
		}
	}
	// Unreachable when the definition ends with +Inf; classify into the
	// last bucket rather than inventing a new state.
	last := len(def.Bounds) - 1
	return Bucket{Label: def.Bounds[last].Label, Index: last}
}

// NumericVerdict is the outcome of comparing guess and answer values.
type NumericVerdict struct {
	Match bool
	Arrow domain.Arrow
	// GuessBucket is the classification of the guessed value, for display.
	GuessBucket Bucket
}

// CompareNumeric compares a guessed value against the answer's value
// under one bucket definition. Two unknowns count as an exact match on
// "not applicable". The arrow points from the guess toward the answer
// and is suppressed whenever either side is unknown or the values are
// equal; it is only meaningful when Match is false.
func CompareNumeric(guess, answer *float64, def domain.BucketDef) NumericVerdict {
	gb := Of(guess, def)
	ab := Of(answer, def)

	v := NumericVerdict{GuessBucket: gb, Arrow: domain.ArrowNone}

	gUnknown := gb.Index == domain.UnknownBucketIndex
	aUnknown := ab.Index == domain.UnknownBucketIndex

	if gUnknown && aUnknown {
		v.Match = true
		return v
	}
	if gUnknown || aUnknown {
		return v
	}

	v.Match = gb.Index == ab.Index
	switch {
	case *guess < *answer:
		v.Arrow = domain.ArrowUp
	case *guess > *answer:
		v.Arrow = domain.ArrowDown
	}
	return v
}

// CompareExact compares a categorical attribute. Absent values are empty
// strings, so two absent values match.
func CompareExact(guess, answer string) bool {
	return guess == answer
}
