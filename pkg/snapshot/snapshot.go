// Package snapshot holds the cache-only shared view of each variant's current
// round. The state is rebuilt by the engine on every transition; nothing here
// is persisted, and a process restart starts from an empty store.
package snapshot

import (
	"encoding/json"
	"time"

	"livegames-server/pkg/threecard"
	"livegames-server/pkg/wager"
)

// HandView is a client-facing rendering of a dealt hand
type HandView struct {
	OutcomeID int      `json:"outcomeId"`
	Cards     []string `json:"cards"`
	Category  string   `json:"category"`
	Winner    bool     `json:"winner"`
}

// State is the shared view of a variant's current round
type State struct {
	Version        int64         `json:"version"`
	Variant        wager.Variant `json:"variant"`
	Round          int64         `json:"round"`
	Phase          wager.Phase   `json:"phase"`
	Countdown      int           `json:"countdown"`
	WinningOutcome *int          `json:"winningOutcome,omitempty"`
	Hands          []HandView    `json:"hands,omitempty"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// Encode marshals the state for the cache boundary
func (s State) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Decode unmarshals a state read back from the cache boundary
func Decode(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, err
	}

	return s, nil
}

// Hands renders dealt hands for the snapshot, flagging the winning outcome
func Hands(hands []threecard.Hand, winningOutcome int) []HandView {
	views := make([]HandView, len(hands))
	for i, hand := range hands {
		cards := make([]string, len(hand.Cards))
		for j, card := range hand.Cards {
			cards[j] = card.Image()
		}

		views[i] = HandView{
			OutcomeID: i + 1,
			Cards:     cards,
			Category:  hand.Category.String(),
			Winner:    i+1 == winningOutcome,
		}
	}

	return views
}
