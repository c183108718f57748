package snapshot

import (
	"testing"

	"livegames-server/pkg/threecard"
	"livegames-server/pkg/wager"

	"github.com/stretchr/testify/assert"
)

func TestStore_PutGet(t *testing.T) {
	a := assert.New(t)

	store := NewStore()

	_, ok := store.Get(string(wager.Greedy))
	a.False(ok)

	put := store.Put(State{
		Variant:   wager.Greedy,
		Round:     7,
		Phase:     wager.PhaseCountdown,
		Countdown: 12,
	})
	a.Equal(int64(1), put.Version)
	a.False(put.UpdatedAt.IsZero())

	got, ok := store.Get(string(wager.Greedy))
	a.True(ok)
	a.Equal(put, got)

	put = store.Put(State{Variant: wager.Greedy, Round: 7, Phase: wager.PhaseCalculating})
	a.Equal(int64(2), put.Version)

	// variants version independently
	put = store.Put(State{Variant: wager.TeenPatti, Round: 3, Phase: wager.PhaseWaiting})
	a.Equal(int64(1), put.Version)
}

func TestState_EncodeDecode(t *testing.T) {
	a := assert.New(t)

	winner := 3
	state := State{
		Version:        4,
		Variant:        wager.TeenPatti,
		Round:          19,
		Phase:          wager.PhaseFinished,
		WinningOutcome: &winner,
		Hands: []HandView{
			{OutcomeID: 1, Cards: []string{"2.1.png", "9.3.png", "13.4.png"}, Category: "High Card"},
		},
	}

	data, err := state.Encode()
	a.NoError(err)

	decoded, err := Decode(data)
	a.NoError(err)
	a.Equal(state, decoded)

	_, err = Decode([]byte("{"))
	a.Error(err)
}

func TestHands(t *testing.T) {
	a := assert.New(t)

	hands := []threecard.Hand{
		threecard.Evaluate([]threecard.Card{
			{Rank: threecard.Ace, Suit: threecard.Spades},
			{Rank: threecard.King, Suit: threecard.Spades},
			{Rank: threecard.Queen, Suit: threecard.Spades},
		}),
		threecard.Evaluate([]threecard.Card{
			{Rank: 2, Suit: threecard.Clubs},
			{Rank: 9, Suit: threecard.Hearts},
			{Rank: threecard.King, Suit: threecard.Diamonds},
		}),
	}

	views := Hands(hands, 1)
	a.Equal(2, len(views))

	a.Equal(HandView{
		OutcomeID: 1,
		Cards:     []string{"14.4.png", "13.4.png", "12.4.png"},
		Category:  "Pure Sequence",
		Winner:    true,
	}, views[0])

	a.Equal(HandView{
		OutcomeID: 2,
		Cards:     []string{"13.2.png", "9.3.png", "2.1.png"},
		Category:  "High Card",
		Winner:    false,
	}, views[1])
}
