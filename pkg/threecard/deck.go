package threecard

import (
	"errors"
	"sort"

	"livegames-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents the undealt portion of a playing deck
type Deck struct {
	cards []Card
}

// NewDeck returns a new deck of 52 cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	return &Deck{cards: cards}
}

// Shuffle will shuffle the deck of cards
func (d *Deck) Shuffle(g rng.Generator) {
	rng.Shuffle(g, len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.cards[0]
	d.cards = d.cards[1:]

	return card, nil
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.cards)
}

// Take removes the specific card from the deck.
// Returns false if the card has already been dealt.
func (d *Deck) Take(card Card) bool {
	for i, c := range d.cards {
		if c.Equal(card) {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return true
		}
	}

	return false
}

// Has returns true if the card is still in the deck
func (d *Deck) Has(rank int, suit Suit) bool {
	for _, c := range d.cards {
		if c.Rank == rank && c.Suit == suit {
			return true
		}
	}

	return false
}

// CardsOfRank returns the undealt cards of the given rank
func (d *Deck) CardsOfRank(rank int) []Card {
	cards := make([]Card, 0, 4)
	for _, c := range d.cards {
		if c.Rank == rank {
			cards = append(cards, c)
		}
	}

	return cards
}

// CardsOfSuit returns the undealt cards of the given suit
func (d *Deck) CardsOfSuit(suit Suit) []Card {
	cards := make([]Card, 0, 13)
	for _, c := range d.cards {
		if c.Suit == suit {
			cards = append(cards, c)
		}
	}

	return cards
}

// Ascending returns the undealt cards sorted by rank, lowest first
func (d *Deck) Ascending() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Rank < cards[j].Rank
	})

	return cards
}
