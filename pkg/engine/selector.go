package engine

import (
	"github.com/sirupsen/logrus"

	"livegames-server/internal/rng"
	"livegames-server/pkg/wager"
)

// reserveRate is the share of collected stakes held back from the bankroll
// before an outcome's liability is judged payable
const reserveRate = 0.30

// Selector picks a round's winning outcome within the house's risk bound
type Selector struct {
	rng rng.Generator
}

// NewSelector returns a selector using the random source
func NewSelector(g rng.Generator) *Selector {
	return &Selector{rng: g}
}

// Select picks the winning outcome for the round. current holds the round's
// stakes, history every settled stake of the variant.
//
// An outcome is payable if paying all stakes on it keeps the house within its
// bankroll minus the reserve. Payable outcomes that carry stakes are preferred,
// then payable outcomes nobody bet on; if every outcome exceeds the bankroll
// one is chosen uniformly at random and the breach is logged.
func (s *Selector) Select(variant wager.Variant, current, history []*wager.Stake) int {
	budget := bankroll(history)

	liability := make([]int64, variant.Outcomes()+1)
	staked := make([]bool, variant.Outcomes()+1)
	for _, stake := range current {
		liability[stake.OutcomeID] += stake.PayoutAmount
		staked[stake.OutcomeID] = true
	}

	payableStaked := make([]int, 0, variant.Outcomes())
	payableUnstaked := make([]int, 0, variant.Outcomes())
	for outcome := 1; outcome <= variant.Outcomes(); outcome++ {
		if float64(liability[outcome]) > budget {
			continue
		}

		if staked[outcome] {
			payableStaked = append(payableStaked, outcome)
		} else {
			payableUnstaked = append(payableUnstaked, outcome)
		}
	}

	if len(payableStaked) > 0 {
		return rng.Pick(s.rng, payableStaked)
	}

	if len(payableUnstaked) > 0 {
		return rng.Pick(s.rng, payableUnstaked)
	}

	all := make([]int, variant.Outcomes())
	for i := range all {
		all[i] = i + 1
	}

	choice := rng.Pick(s.rng, all)
	logrus.WithFields(logrus.Fields{
		"strategy":  "house_loss",
		"variant":   variant,
		"outcome":   choice,
		"liability": liability[choice],
		"budget":    budget,
	}).Warn("no payable outcome, choosing uniformly")

	return choice
}

// bankroll computes the house budget from settled stakes. Profit is what the
// house kept from losing stakes; winning stakes contribute only their payout
// as cost. The reserve holds back 30% of profit. Refunded stakes stay pending
// after settlement and are excluded.
func bankroll(history []*wager.Stake) float64 {
	var profit, paid int64
	for _, stake := range history {
		switch stake.Status {
		case wager.StatusWon:
			paid += stake.PayoutAmount
		case wager.StatusLost:
			profit += stake.Amount
		}
	}

	return float64(profit) - float64(paid) - reserveRate*float64(profit)
}
