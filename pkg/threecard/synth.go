package threecard

import (
	"errors"
	"fmt"

	"livegames-server/internal/rng"

	"github.com/sirupsen/logrus"
)

// Outcomes is the number of betting outcomes in the card variant
const Outcomes = 3

// synthRetries bounds how often a loser hand is resynthesized before the
// deterministic low-card fallback kicks in
const synthRetries = 10

// ErrWinnerInvariant happens if a generated loser hand outranks the winner.
// The generator's fallback makes this unreachable in practice; it is kept as
// a final guard because a violation would pay the wrong outcome.
var ErrWinnerInvariant = errors.New("winner hand is weaker than a loser hand")

var categories = []Category{Trail, PureSequence, Sequence, Color, Pair, HighCard}

// Generator synthesizes per-outcome hands where a designated outcome wins
type Generator struct {
	rng rng.Generator
}

// NewGenerator returns a hand generator using the random source
func NewGenerator(g rng.Generator) *Generator {
	return &Generator{rng: g}
}

// Generate produces one hand per outcome (index 0 holds outcome 1) such that
// the winning outcome's hand ranks greater than or equal to every other
// outcome's hand. The winner's category is chosen uniformly from all six
// categories; losers are synthesized from strictly weaker categories, or from
// low-value high cards when the winner already has the weakest category. No
// card appears in more than one hand.
func (g *Generator) Generate(winningOutcome int) ([]Hand, error) {
	if winningOutcome < 1 || winningOutcome > Outcomes {
		return nil, fmt.Errorf("winning outcome %d out of range", winningOutcome)
	}

	deck := NewDeck()
	deck.Shuffle(g.rng)

	winnerCategory := categories[g.rng.Intn(len(categories))]
	winnerCards, ok := synthesize(deck, winnerCategory, true)
	if !ok {
		// cannot happen from a full deck
		return nil, fmt.Errorf("could not synthesize winner category %s", winnerCategory)
	}

	for _, c := range winnerCards {
		deck.Take(c)
	}
	winner := Evaluate(winnerCards)

	loserCategories := weakerCategories(winnerCategory)

	hands := make([]Hand, Outcomes)
	li := 0
	for outcome := 1; outcome <= Outcomes; outcome++ {
		if outcome == winningOutcome {
			continue
		}

		hand := g.loserHand(deck, loserCategories[li%len(loserCategories)], winner)
		li++

		for _, c := range hand.Cards {
			deck.Take(c)
		}
		hands[outcome-1] = hand
	}

	hands[winningOutcome-1] = winner

	for i, hand := range hands {
		if i+1 != winningOutcome && Compare(hand, winner) > 0 {
			return nil, ErrWinnerInvariant
		}
	}

	return hands, nil
}

// weakerCategories returns the loser categories for a winner category,
// strongest first. A high-card winner leaves only low high-card hands.
func weakerCategories(winner Category) []Category {
	weaker := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c < winner {
			weaker = append(weaker, c)
		}
	}

	if len(weaker) == 0 {
		return []Category{HighCard, HighCard}
	}

	return weaker
}

// loserHand synthesizes a hand that must not outrank the winner. If the
// requested category cannot be built from the undealt cards, progressively
// weaker categories are tried; once retries are exhausted the hand is forced
// from the lowest undealt cards. The forced fallback changes the statistical
// distribution of categories, so it is logged distinctly.
func (g *Generator) loserHand(deck *Deck, category Category, winner Hand) Hand {
	cat := category
	for attempt := 0; attempt < synthRetries; attempt++ {
		if cards, ok := synthesize(deck, cat, false); ok {
			hand := Evaluate(cards)
			if Compare(hand, winner) <= 0 {
				return hand
			}
		}

		if cat > HighCard {
			cat--
		}
	}

	logrus.WithFields(logrus.Fields{
		"category": category.String(),
		"winner":   winner.Category.String(),
	}).Warn("loser hand synthesis exhausted retries, forcing low-card hand")

	return Evaluate(forceWeak(deck))
}

func synthesize(d *Deck, category Category, preferHigh bool) ([]Card, bool) {
	switch category {
	case Trail:
		return synthTrail(d, preferHigh)
	case PureSequence:
		return synthStraight(d, preferHigh, true)
	case Sequence:
		return synthStraight(d, preferHigh, false)
	case Color:
		return synthColor(d, preferHigh)
	case Pair:
		return synthPair(d, preferHigh)
	case HighCard:
		return synthHighCard(d, preferHigh)
	}

	return nil, false
}

func rankOrder(preferHigh bool) []int {
	order := make([]int, 0, 13)
	if preferHigh {
		for r := Ace; r >= 2; r-- {
			order = append(order, r)
		}
	} else {
		for r := 2; r <= Ace; r++ {
			order = append(order, r)
		}
	}

	return order
}

func sequenceTargets(preferHigh bool) [][3]int {
	if preferHigh {
		return [][3]int{{Ace, King, Queen}, {King, Queen, Jack}, {Queen, Jack, 10}}
	}

	return [][3]int{{5, 4, 3}, {4, 3, 2}, {Ace, 3, 2}}
}

func synthTrail(d *Deck, preferHigh bool) ([]Card, bool) {
	for _, rank := range rankOrder(preferHigh) {
		if cards := d.CardsOfRank(rank); len(cards) >= 3 {
			return cards[:3], true
		}
	}

	return nil, false
}

// synthStraight builds a sequence; suited makes it a pure sequence
func synthStraight(d *Deck, preferHigh, suited bool) ([]Card, bool) {
	targets := sequenceTargets(preferHigh)

	if suited {
		for _, suit := range suits {
			for _, seq := range targets {
				if d.Has(seq[0], suit) && d.Has(seq[1], suit) && d.Has(seq[2], suit) {
					return []Card{
						{Rank: seq[0], Suit: suit},
						{Rank: seq[1], Suit: suit},
						{Rank: seq[2], Suit: suit},
					}, true
				}
			}
		}

		return nil, false
	}

	for _, seq := range targets {
		cards := make([]Card, 0, 3)
		for _, rank := range seq {
			options := d.CardsOfRank(rank)
			if len(options) == 0 {
				cards = nil
				break
			}

			// steer away from a flush when another suit is available
			pick := options[0]
			if len(cards) > 0 {
				for _, option := range options {
					if option.Suit != cards[0].Suit {
						pick = option
						break
					}
				}
			}

			cards = append(cards, pick)
		}

		if len(cards) == 3 && Evaluate(cards).Category == Sequence {
			return cards, true
		}
	}

	return nil, false
}

func synthColor(d *Deck, preferHigh bool) ([]Card, bool) {
	for _, suit := range suits {
		cards := d.CardsOfSuit(suit)
		if len(cards) < 3 {
			continue
		}

		// adjacent ranks of one suit form a pure sequence, so scan all
		// triples for a plain flush
		sortByRank(cards, preferHigh)
		for i := 0; i < len(cards); i++ {
			for j := i + 1; j < len(cards); j++ {
				for k := j + 1; k < len(cards); k++ {
					hand := []Card{cards[i], cards[j], cards[k]}
					if Evaluate(hand).Category == Color {
						return hand, true
					}
				}
			}
		}
	}

	return nil, false
}

func synthPair(d *Deck, preferHigh bool) ([]Card, bool) {
	order := rankOrder(preferHigh)
	for _, rank := range order {
		pairCards := d.CardsOfRank(rank)
		if len(pairCards) < 2 {
			continue
		}

		for _, kickerRank := range order {
			if kickerRank == rank {
				continue
			}

			if kickers := d.CardsOfRank(kickerRank); len(kickers) > 0 {
				return []Card{pairCards[0], pairCards[1], kickers[0]}, true
			}
		}
	}

	return nil, false
}

func synthHighCard(d *Deck, preferHigh bool) ([]Card, bool) {
	targets := []int{Ace, King, Jack}
	if !preferHigh {
		targets = []int{7, 5, 2}
	}

	cards := make([]Card, 0, 3)
	for _, rank := range targets {
		options := d.CardsOfRank(rank)
		if len(options) == 0 {
			cards = nil
			break
		}

		pick := options[0]
		if len(cards) > 0 {
			for _, option := range options {
				if option.Suit != cards[0].Suit {
					pick = option
					break
				}
			}
		}

		cards = append(cards, pick)
	}

	if len(cards) == 3 && Evaluate(cards).Category == HighCard {
		return cards, true
	}

	if weak := forceWeak(d); weak != nil {
		return weak, true
	}

	return nil, false
}

// forceWeak deterministically picks the lowest undealt cards that form a
// plain high-card hand (distinct ranks, no straight, no flush)
func forceWeak(d *Deck) []Card {
	ascending := d.Ascending()

	picked := make([]Card, 0, 3)
	for _, card := range ascending {
		if len(picked) > 0 && card.Rank == picked[len(picked)-1].Rank {
			continue
		}

		if len(picked) == 2 {
			candidate := []Card{picked[0], picked[1], card}
			if Evaluate(candidate).Category != HighCard {
				continue
			}

			return candidate
		}

		picked = append(picked, card)
	}

	return nil
}

func sortByRank(cards []Card, descending bool) {
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0; j-- {
			swap := cards[j].Rank > cards[j-1].Rank
			if descending {
				swap = cards[j].Rank < cards[j-1].Rank
			}

			if !swap {
				break
			}

			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}
