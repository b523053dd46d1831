package bucket

import (
	"math"

	"stockle/internal/domain"
)

// Default bucket definitions for the standard deployment. Bounds are
// exclusive uppers; the final +Inf bucket is the catch-all.
var (
	FoundedDef = domain.BucketDef{
		Attr: domain.AttrFounded,
		Bounds: []domain.BucketBound{
			{Label: "before 1900", Upper: 1900},
			{Label: "1900-1949", Upper: 1950},
			{Label: "1950-1979", Upper: 1980},
			{Label: "1980-1999", Upper: 2000},
			{Label: "2000-2009", Upper: 2010},
			{Label: "2010 or later", Upper: math.Inf(1)},
		},
	}

	PriceDef = domain.BucketDef{
		Attr: domain.AttrPrice,
		Bounds: []domain.BucketBound{
			{Label: "under $10", Upper: 10},
			{Label: "$10-$50", Upper: 50},
			{Label: "$50-$100", Upper: 100},
			{Label: "$100-$250", Upper: 250},
			{Label: "$250-$500", Upper: 500},
			{Label: "$500 or more", Upper: math.Inf(1)},
		},
	}

	MarketCapDef = domain.BucketDef{
		Attr: domain.AttrMarketCap,
		Bounds: []domain.BucketBound{
			{Label: "under $2B", Upper: 2e9},
			{Label: "$2B-$10B", Upper: 10e9},
			{Label: "$10B-$50B", Upper: 50e9},
			{Label: "$50B-$200B", Upper: 200e9},
			{Label: "$200B-$1T", Upper: 1e12},
			{Label: "$1T or more", Upper: math.Inf(1)},
		},
	}

	EmployeesDef = domain.BucketDef{
		Attr: domain.AttrEmployees,
		Bounds: []domain.BucketBound{
			{Label: "under 1k", Upper: 1000},
			{Label: "1k-10k", Upper: 10000},
			{Label: "10k-50k", Upper: 50000},
			{Label: "50k-100k", Upper: 100000},
			{Label: "100k-500k", Upper: 500000},
			{Label: "500k or more", Upper: math.Inf(1)},
		},
	}

	PEDef = domain.BucketDef{
		Attr: domain.AttrPE,
		Bounds: []domain.BucketBound{
			{Label: "under 10", Upper: 10},
			{Label: "10-20", Upper: 20},
			{Label: "20-35", Upper: 35},
			{Label: "35-60", Upper: 60},
			{Label: "60 or more", Upper: math.Inf(1)},
		},
	}
)

// DefaultDefs returns the definitions keyed by attribute, in the fixed
// feedback order.
func DefaultDefs() map[domain.NumericAttr]domain.BucketDef {
	return map[domain.NumericAttr]domain.BucketDef{
		domain.AttrFounded:   FoundedDef,
		domain.AttrPrice:     PriceDef,
		domain.AttrMarketCap: MarketCapDef,
		domain.AttrEmployees: EmployeesDef,
		domain.AttrPE:        PEDef,
	}
}
