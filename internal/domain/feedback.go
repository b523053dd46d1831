package domain

// Arrow is the directional hint attached to a mismatched numeric verdict.
type Arrow string

const (
	ArrowNone Arrow = ""
	ArrowUp   Arrow = "UP"   // answer is higher than the guess
	ArrowDown Arrow = "DOWN" // answer is lower than the guess
)

// IsValid checks if the arrow is a valid value.
func (a Arrow) IsValid() bool {
	return a == ArrowNone || a == ArrowUp || a == ArrowDown
}

// AttrVerdict is the feedback for a single compared attribute.
// Arrow is only meaningful when Match is false and the attribute is numeric.
type AttrVerdict struct {
	Attr  string // "sector", "hq" or a NumericAttr value
	Match bool
	Arrow Arrow
	Label string // bucket label of the guessed value, "" for categorical/unknown
}

// GuessFeedback is the per-attribute feedback for one accepted guess,
// in the fixed tile order: sector, hq, founded, price, marketCap,
// employees, pe.
type GuessFeedback struct {
	Ticker   string
	Name     string
	Correct  bool // guess equals the answer
	Verdicts []AttrVerdict
}

// AttrCount is the number of compared attributes (one tile each).
const AttrCount = 7
