package wager

// Variant identifies one of the games the server operates
type Variant string

// game variants
const (
	// Greedy is the 8-option wheel game
	Greedy Variant = "greedy"
	// TeenPatti is the 3-option card game
	TeenPatti Variant = "teenpatti"
)

// Outcomes returns the number of outcomes a stake may be placed on
func (v Variant) Outcomes() int {
	switch v {
	case Greedy:
		return 8
	case TeenPatti:
		return 3
	}

	return 0
}

// HasHands returns true if the variant renders card hands per outcome
func (v Variant) HasHands() bool {
	return v == TeenPatti
}

func (v Variant) String() string {
	return string(v)
}
