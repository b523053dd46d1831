package domain

// Company represents one guessable entity from the curated list.
// Numeric fields are nullable: data refreshes can leave any of them
// unknown, which is distinct from zero.
type Company struct {
	Ticker    string   // unique key, stored uppercase
	Name      string   // display name, non-empty
	Sector    string   // categorical
	HQ        string   // categorical, headquarters location
	Founded   *float64 // founding year (nullable)
	Price     *float64 // last close price in USD (nullable)
	MarketCap *float64 // market capitalization in USD (nullable)
	Employees *float64 // headcount (nullable)
	PE        *float64 // trailing P/E ratio (nullable)
}

// NumericAttr identifies one of the bucketed numeric attributes.
type NumericAttr string

const (
	AttrFounded   NumericAttr = "founded"
	AttrPrice     NumericAttr = "price"
	AttrMarketCap NumericAttr = "marketCap"
	AttrEmployees NumericAttr = "employees"
	AttrPE        NumericAttr = "pe"
)

// String returns the string representation of NumericAttr.
func (a NumericAttr) String() string {
	return string(a)
}

// IsValid checks if the attribute is a valid value.
func (a NumericAttr) IsValid() bool {
	switch a {
	case AttrFounded, AttrPrice, AttrMarketCap, AttrEmployees, AttrPE:
		return true
	}
	return false
}

// NumericAttrs lists the bucketed attributes in feedback order.
var NumericAttrs = []NumericAttr{AttrFounded, AttrPrice, AttrMarketCap, AttrEmployees, AttrPE}

// Numeric returns the value of the given attribute, nil when unknown.
func (c *Company) Numeric(attr NumericAttr) *float64 {
	switch attr {
	case AttrFounded:
		return c.Founded
	case AttrPrice:
		return c.Price
	case AttrMarketCap:
		return c.MarketCap
	case AttrEmployees:
		return c.Employees
	case AttrPE:
		return c.PE
	}
	return nil
}
