package models

// Bracket is a contiguous income range taxed at one fixed percentage.
type Bracket struct {
	Percentage float64  `json:"percentage"`
	From       float64  `json:"from"`
	To         *float64 `json:"to,omitempty"` // nil for the unbounded top bracket
}

// Unbounded reports whether the bracket has no upper limit
func (b Bracket) Unbounded() bool {
	return b.To == nil
}
