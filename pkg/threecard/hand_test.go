package threecard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hand(cards ...Card) Hand {
	return Evaluate(cards)
}

func TestEvaluate_categories(t *testing.T) {
	a := assert.New(t)

	a.Equal(Trail, hand(
		Card{Rank: 7, Suit: Clubs},
		Card{Rank: 7, Suit: Hearts},
		Card{Rank: 7, Suit: Spades},
	).Category)

	a.Equal(PureSequence, hand(
		Card{Rank: Queen, Suit: Hearts},
		Card{Rank: Ace, Suit: Hearts},
		Card{Rank: King, Suit: Hearts},
	).Category)

	a.Equal(Sequence, hand(
		Card{Rank: 9, Suit: Clubs},
		Card{Rank: 10, Suit: Hearts},
		Card{Rank: 8, Suit: Hearts},
	).Category)

	a.Equal(Color, hand(
		Card{Rank: 2, Suit: Spades},
		Card{Rank: 9, Suit: Spades},
		Card{Rank: King, Suit: Spades},
	).Category)

	a.Equal(Pair, hand(
		Card{Rank: 4, Suit: Clubs},
		Card{Rank: Jack, Suit: Hearts},
		Card{Rank: 4, Suit: Spades},
	).Category)

	a.Equal(HighCard, hand(
		Card{Rank: 2, Suit: Clubs},
		Card{Rank: 9, Suit: Hearts},
		Card{Rank: King, Suit: Spades},
	).Category)
}

func TestEvaluate_aceStraights(t *testing.T) {
	a := assert.New(t)

	low := hand(
		Card{Rank: Ace, Suit: Clubs},
		Card{Rank: 2, Suit: Hearts},
		Card{Rank: 3, Suit: Spades},
	)
	a.Equal(Sequence, low.Category)

	lowSuited := hand(
		Card{Rank: 3, Suit: Diamonds},
		Card{Rank: Ace, Suit: Diamonds},
		Card{Rank: 2, Suit: Diamonds},
	)
	a.Equal(PureSequence, lowSuited.Category)

	high := hand(
		Card{Rank: King, Suit: Clubs},
		Card{Rank: Ace, Suit: Hearts},
		Card{Rank: Queen, Suit: Spades},
	)
	a.Equal(Sequence, high.Category)

	// A-2-3 compares by the three, so even 4-5-6 beats it
	mid := hand(
		Card{Rank: 4, Suit: Clubs},
		Card{Rank: 5, Suit: Hearts},
		Card{Rank: 6, Suit: Spades},
	)
	a.Equal(1, Compare(mid, low))
	a.Equal(1, Compare(high, mid))

	// K-A-2 is not a straight
	a.Equal(HighCard, hand(
		Card{Rank: King, Suit: Clubs},
		Card{Rank: Ace, Suit: Hearts},
		Card{Rank: 2, Suit: Spades},
	).Category)
}

func TestCompare_categoryOrder(t *testing.T) {
	a := assert.New(t)

	hands := []Hand{
		hand(Card{Rank: 2, Suit: Clubs}, Card{Rank: 9, Suit: Hearts}, Card{Rank: King, Suit: Spades}),
		hand(Card{Rank: 2, Suit: Clubs}, Card{Rank: 2, Suit: Hearts}, Card{Rank: 5, Suit: Spades}),
		hand(Card{Rank: 2, Suit: Hearts}, Card{Rank: 7, Suit: Hearts}, Card{Rank: 9, Suit: Hearts}),
		hand(Card{Rank: 4, Suit: Clubs}, Card{Rank: 5, Suit: Hearts}, Card{Rank: 6, Suit: Spades}),
		hand(Card{Rank: 4, Suit: Clubs}, Card{Rank: 5, Suit: Clubs}, Card{Rank: 6, Suit: Clubs}),
		hand(Card{Rank: 2, Suit: Clubs}, Card{Rank: 2, Suit: Hearts}, Card{Rank: 2, Suit: Spades}),
	}

	for i := 1; i < len(hands); i++ {
		a.Equal(1, Compare(hands[i], hands[i-1]), "%s must beat %s", hands[i].Category, hands[i-1].Category)
		a.Equal(-1, Compare(hands[i-1], hands[i]))
	}
}

func TestCompare_tiebreaks(t *testing.T) {
	a := assert.New(t)

	// higher pair wins regardless of kicker
	a.Equal(1, Compare(
		hand(Card{Rank: 9, Suit: Clubs}, Card{Rank: 9, Suit: Hearts}, Card{Rank: 2, Suit: Spades}),
		hand(Card{Rank: 8, Suit: Clubs}, Card{Rank: 8, Suit: Hearts}, Card{Rank: Ace, Suit: Spades}),
	))

	// same pair, kicker decides
	a.Equal(1, Compare(
		hand(Card{Rank: 9, Suit: Clubs}, Card{Rank: 9, Suit: Hearts}, Card{Rank: Queen, Suit: Spades}),
		hand(Card{Rank: 9, Suit: Diamonds}, Card{Rank: 9, Suit: Spades}, Card{Rank: Jack, Suit: Clubs}),
	))

	// identical ranks tie across suits
	a.Equal(0, Compare(
		hand(Card{Rank: 2, Suit: Clubs}, Card{Rank: 9, Suit: Hearts}, Card{Rank: King, Suit: Spades}),
		hand(Card{Rank: 2, Suit: Diamonds}, Card{Rank: 9, Suit: Spades}, Card{Rank: King, Suit: Clubs}),
	))

	// high card compares all three ranks
	a.Equal(1, Compare(
		hand(Card{Rank: King, Suit: Clubs}, Card{Rank: 9, Suit: Hearts}, Card{Rank: 3, Suit: Spades}),
		hand(Card{Rank: King, Suit: Diamonds}, Card{Rank: 9, Suit: Spades}, Card{Rank: 2, Suit: Clubs}),
	))
}

func TestEvaluate_sortsDescending(t *testing.T) {
	a := assert.New(t)

	h := hand(
		Card{Rank: 4, Suit: Clubs},
		Card{Rank: King, Suit: Hearts},
		Card{Rank: 9, Suit: Spades},
	)
	a.Equal([]Card{
		{Rank: King, Suit: Hearts},
		{Rank: 9, Suit: Spades},
		{Rank: 4, Suit: Clubs},
	}, h.Cards)
}

func TestEvaluate_panicsOnBadSize(t *testing.T) {
	assert.Panics(t, func() {
		Evaluate([]Card{{Rank: 2, Suit: Clubs}})
	})
}

func TestCategory_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("Trail", Trail.String())
	a.Equal("Pure Sequence", PureSequence.String())
	a.Equal("Sequence", Sequence.String())
	a.Equal("Color", Color.String())
	a.Equal("Pair", Pair.String())
	a.Equal("High Card", HighCard.String())
	a.Equal("Unknown", Category(0).String())
}
