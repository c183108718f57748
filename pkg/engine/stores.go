package engine

import (
	"context"

	"livegames-server/pkg/wager"
)

// RoundStore is the round persistence the engine depends on
type RoundStore interface {
	CreateRound(ctx context.Context, variant wager.Variant, round int64) (*wager.Round, error)
	LastRound(ctx context.Context, variant wager.Variant) (*wager.Round, error)
	SetWinningOutcome(ctx context.Context, variant wager.Variant, round int64, outcome int) error
}

// StakeStore is the stake persistence the engine depends on
type StakeStore interface {
	StakesByRound(ctx context.Context, variant wager.Variant, round int64) ([]*wager.Stake, error)
	CompletedStakes(ctx context.Context, variant wager.Variant) ([]*wager.Stake, error)
	TagStatuses(ctx context.Context, variant wager.Variant, round int64, winningOutcome int) error
	MarkCompleted(ctx context.Context, variant wager.Variant, round int64) error
	RefundUncompleted(ctx context.Context, variant wager.Variant, round int64) (int, error)
	PayWinners(ctx context.Context, stakes []*wager.Stake) (map[int64]int64, error)
}

// Store is the full persistence surface of the engine.
// *wager.Store satisfies it; tests substitute fakes.
type Store interface {
	RoundStore
	StakeStore
}
