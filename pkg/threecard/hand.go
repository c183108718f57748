package threecard

import "sort"

// Category is a three-card hand strength class
type Category int

// hand categories, weakest first
const (
	HighCard Category = iota + 1
	Pair
	Color
	Sequence
	PureSequence
	Trail
)

func (c Category) String() string {
	switch c {
	case Trail:
		return "Trail"
	case PureSequence:
		return "Pure Sequence"
	case Sequence:
		return "Sequence"
	case Color:
		return "Color"
	case Pair:
		return "Pair"
	case HighCard:
		return "High Card"
	}

	return "Unknown"
}

// Hand is an evaluated three-card hand
type Hand struct {
	Cards    []Card   `json:"cards"`
	Category Category `json:"category"`

	strength int
}

// Strength returns a comparable strength value.
// The category dominates; ties within a category break on card ranks.
func (h Hand) Strength() int {
	return h.strength
}

// Compare compares two hands and returns 1 if a wins, -1 if b wins, 0 on a tie
func Compare(a, b Hand) int {
	switch {
	case a.strength > b.strength:
		return 1
	case a.strength < b.strength:
		return -1
	}

	return 0
}

// Evaluate analyzes a three-card hand.
// The returned hand holds the cards sorted by rank, highest first.
func Evaluate(cards []Card) Hand {
	if len(cards) != 3 {
		panic("hand must contain exactly 3 cards")
	}

	sorted := make([]Card, 3)
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	v0, v1, v2 := sorted[0].Rank, sorted[1].Rank, sorted[2].Rank
	flush := sorted[0].Suit == sorted[1].Suit && sorted[1].Suit == sorted[2].Suit
	straight, high := sequenceHigh(v0, v1, v2)

	var category Category
	var tiebreak [3]int

	switch {
	case v0 == v1 && v1 == v2:
		category = Trail
		tiebreak = [3]int{v0, 0, 0}
	case straight && flush:
		category = PureSequence
		tiebreak = [3]int{high, 0, 0}
	case straight:
		category = Sequence
		tiebreak = [3]int{high, 0, 0}
	case flush:
		category = Color
		tiebreak = [3]int{v0, v1, v2}
	case v0 == v1 || v1 == v2:
		pairRank, kicker := v1, v0
		if v0 == v1 {
			kicker = v2
		}
		category = Pair
		tiebreak = [3]int{pairRank, kicker, 0}
	default:
		category = HighCard
		tiebreak = [3]int{v0, v1, v2}
	}

	return Hand{
		Cards:    sorted,
		Category: category,
		strength: packStrength(category, tiebreak),
	}
}

// sequenceHigh reports whether the descending ranks form a straight and, if
// so, the rank the straight compares by. A-2-3 is a straight that compares by
// its high card 3; A-K-Q compares by the ace.
func sequenceHigh(v0, v1, v2 int) (bool, int) {
	if v0-1 == v1 && v1-1 == v2 {
		return true, v0
	}

	// around the corner: A-2-3
	if v0 == Ace && v1 == 3 && v2 == 2 {
		return true, 3
	}

	return false, 0
}

// packStrength packs the category and up to three tie-break ranks into a
// single comparable integer. Ranks are < 15, so base-15 digits never collide.
func packStrength(category Category, tiebreak [3]int) int {
	s := int(category)
	for _, v := range tiebreak {
		s = s*15 + v
	}

	return s
}
