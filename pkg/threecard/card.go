package threecard

import (
	"fmt"
	"strconv"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

var suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return fmt.Sprintf("%s%s", rank, suit)
}

// suitNumber is the numeric suit code used by the client's card art
// (1=clubs, 2=diamonds, 3=hearts, 4=spades)
func suitNumber(s Suit) int {
	switch s {
	case Clubs:
		return 1
	case Diamonds:
		return 2
	case Hearts:
		return 3
	case Spades:
		return 4
	}

	panic("unknown suit")
}

// Image returns the card's image filename, e.g. "14.4.png" for the ace of spades
func (c Card) Image() string {
	return fmt.Sprintf("%d.%d.png", c.Rank, suitNumber(c.Suit))
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}
