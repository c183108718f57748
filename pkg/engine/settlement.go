package engine

import (
	"context"
	"math"

	"livegames-server/pkg/wager"
)

// Results summarizes a settled round
type Results struct {
	Round          int64   `json:"round"`
	WinningOutcome int     `json:"winningOutcome"`
	TotalStakes    int     `json:"totalStakes"`
	WinningStakes  int     `json:"winningStakes"`
	TotalAmount    int64   `json:"totalAmount"`
	WinningAmount  int64   `json:"winningAmount"`
	WinRate        float64 `json:"winRate"`
}

// Settle pays out the round: pending stakes are tagged won or lost, winners
// are credited, and every stake is marked completed. Settling an already
// settled round changes nothing; completed stakes are never paid again.
func Settle(ctx context.Context, store StakeStore, variant wager.Variant, round int64, winningOutcome int) (*Results, error) {
	if err := store.TagStatuses(ctx, variant, round, winningOutcome); err != nil {
		return nil, err
	}

	stakes, err := store.StakesByRound(ctx, variant, round)
	if err != nil {
		return nil, err
	}

	winners := make([]*wager.Stake, 0, len(stakes))
	for _, stake := range stakes {
		if stake.Status == wager.StatusWon && !stake.Completed {
			winners = append(winners, stake)
		}
	}

	if _, err := store.PayWinners(ctx, winners); err != nil {
		return nil, err
	}

	if err := store.MarkCompleted(ctx, variant, round); err != nil {
		return nil, err
	}

	results := &Results{
		Round:          round,
		WinningOutcome: winningOutcome,
	}
	for _, stake := range stakes {
		results.TotalStakes++
		results.TotalAmount += stake.Amount
		if stake.Status == wager.StatusWon {
			results.WinningStakes++
			results.WinningAmount += stake.PayoutAmount
		}
	}

	if results.TotalStakes > 0 {
		rate := float64(results.WinningStakes) / float64(results.TotalStakes) * 100
		results.WinRate = math.Round(rate*100) / 100
	}

	return results, nil
}
