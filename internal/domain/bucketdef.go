package domain

import "math"

// BucketBound is one (label, exclusive upper bound) pair of a bucket definition.
type BucketBound struct {
	Label string
	Upper float64 // exclusive; math.Inf(1) for the final catch-all bucket
}

// BucketDef is an ordered sequence of buckets with strictly increasing
// exclusive upper bounds. A value belongs to the first bucket whose upper
// bound strictly exceeds it, so a value equal to a bound falls into the
// next bucket.
type BucketDef struct {
	Attr   NumericAttr
	Bounds []BucketBound
}

// UnknownBucketIndex is the sentinel index for absent/NaN values. It is
// distinct from every real bucket index.
const UnknownBucketIndex = -1

// IsValid checks that bounds exist and upper bounds strictly increase.
func (d BucketDef) IsValid() bool {
	if len(d.Bounds) == 0 {
		return false
	}
	prev := math.Inf(-1)
	for _, b := range d.Bounds {
		if !(b.Upper > prev) {
			return false
		}
		prev = b.Upper
	}
	return true
}
