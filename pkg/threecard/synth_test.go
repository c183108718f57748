package threecard

import (
	"testing"

	"livegames-server/internal/rng"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Generate(t *testing.T) {
	a := assert.New(t)
	g := NewGenerator(rng.Crypto{})

	for i := 0; i < 1000; i++ {
		winningOutcome := i%Outcomes + 1

		hands, err := g.Generate(winningOutcome)
		a.NoError(err)
		a.Equal(Outcomes, len(hands))

		seen := make(map[Card]bool)
		for _, hand := range hands {
			a.Equal(3, len(hand.Cards))
			for _, card := range hand.Cards {
				a.False(seen[card], "card %s dealt twice", card)
				seen[card] = true
			}
		}

		winner := hands[winningOutcome-1]
		for j, hand := range hands {
			if j+1 == winningOutcome {
				continue
			}

			a.True(Compare(winner, hand) >= 0,
				"outcome %d (%s) must not outrank winner %d (%s)",
				j+1, hand.Category, winningOutcome, winner.Category)
		}
	}
}

func TestGenerator_Generate_badOutcome(t *testing.T) {
	a := assert.New(t)
	g := NewGenerator(rng.Crypto{})

	_, err := g.Generate(0)
	a.Error(err)

	_, err = g.Generate(Outcomes + 1)
	a.Error(err)
}

func TestWeakerCategories(t *testing.T) {
	a := assert.New(t)

	a.Equal([]Category{PureSequence, Sequence, Color, Pair, HighCard}, weakerCategories(Trail))
	a.Equal([]Category{Color, Pair, HighCard}, weakerCategories(Sequence))
	a.Equal([]Category{HighCard}, weakerCategories(Pair))
	a.Equal([]Category{HighCard, HighCard}, weakerCategories(HighCard))
}

func TestSynthesize_fromFullDeck(t *testing.T) {
	a := assert.New(t)

	for _, category := range categories {
		cards, ok := synthesize(NewDeck(), category, true)
		a.True(ok, "category %s", category)
		a.Equal(category, Evaluate(cards).Category)

		cards, ok = synthesize(NewDeck(), category, false)
		a.True(ok, "category %s (low)", category)
		a.Equal(category, Evaluate(cards).Category)
	}
}

func TestSynthesize_highBeatsLow(t *testing.T) {
	a := assert.New(t)

	for _, category := range categories {
		high, _ := synthesize(NewDeck(), category, true)
		low, _ := synthesize(NewDeck(), category, false)
		a.Equal(1, Compare(Evaluate(high), Evaluate(low)), "category %s", category)
	}
}

func TestForceWeak(t *testing.T) {
	a := assert.New(t)

	cards := forceWeak(NewDeck())
	a.Equal([]Card{
		{Rank: 2, Suit: Clubs},
		{Rank: 3, Suit: Clubs},
		{Rank: 5, Suit: Diamonds},
	}, cards)
	a.Equal(HighCard, Evaluate(cards).Category)
}
