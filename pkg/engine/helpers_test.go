package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"livegames-server/pkg/wager"
)

// stubRNG returns a fixed value from Intn (clamped to range)
type stubRNG struct {
	value int
}

func (s stubRNG) Intn(n int) int {
	if s.value < n {
		return s.value
	}

	return 0
}

// fakeStore is an in-memory Store for scheduler and settlement tests
type fakeStore struct {
	mu             sync.Mutex
	rounds         map[int64]*wager.Round
	lastRound      int64
	stakes         []*wager.Stake
	credits        map[int64]int64
	createFailures int
	tagFailures    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rounds:  make(map[int64]*wager.Round),
		credits: make(map[int64]int64),
	}
}

func (f *fakeStore) addStake(stake *wager.Stake) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stakes = append(f.stakes, stake)
}

func (f *fakeStore) CreateRound(_ context.Context, variant wager.Variant, round int64) (*wager.Round, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createFailures > 0 {
		f.createFailures--
		return nil, errors.New("create round failed")
	}

	record := &wager.Round{
		ID:      int64(len(f.rounds) + 1),
		Variant: variant,
		Round:   round,
		Created: time.Now(),
	}
	f.rounds[round] = record
	f.lastRound = round

	return record, nil
}

func (f *fakeStore) LastRound(_ context.Context, _ wager.Variant) (*wager.Round, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.lastRound == 0 {
		return nil, wager.ErrRoundNotFound
	}

	return f.rounds[f.lastRound], nil
}

func (f *fakeStore) SetWinningOutcome(_ context.Context, _ wager.Variant, round int64, outcome int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.rounds[round]
	if !ok {
		return wager.ErrRoundNotFound
	}

	if record.WinningOutcome != nil {
		return wager.ErrOutcomeAlreadySet
	}

	record.WinningOutcome = &outcome
	return nil
}

func (f *fakeStore) StakesByRound(_ context.Context, variant wager.Variant, round int64) ([]*wager.Stake, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stakes := make([]*wager.Stake, 0)
	for _, stake := range f.stakes {
		if stake.Variant == variant && stake.Round == round {
			stakes = append(stakes, stake)
		}
	}

	return stakes, nil
}

func (f *fakeStore) CompletedStakes(_ context.Context, variant wager.Variant) ([]*wager.Stake, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stakes := make([]*wager.Stake, 0)
	for _, stake := range f.stakes {
		if stake.Variant == variant && stake.Completed {
			stakes = append(stakes, stake)
		}
	}

	return stakes, nil
}

func (f *fakeStore) TagStatuses(_ context.Context, variant wager.Variant, round int64, winningOutcome int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tagFailures > 0 {
		f.tagFailures--
		return errors.New("tag statuses failed")
	}

	for _, stake := range f.stakes {
		if stake.Variant != variant || stake.Round != round || stake.Status != wager.StatusPending {
			continue
		}

		if stake.OutcomeID == winningOutcome {
			stake.Status = wager.StatusWon
		} else {
			stake.Status = wager.StatusLost
		}
	}

	return nil
}

func (f *fakeStore) MarkCompleted(_ context.Context, variant wager.Variant, round int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, stake := range f.stakes {
		if stake.Variant == variant && stake.Round == round {
			stake.Completed = true
		}
	}

	return nil
}

func (f *fakeStore) RefundUncompleted(_ context.Context, variant wager.Variant, round int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, stake := range f.stakes {
		if stake.Variant != variant || stake.Round != round || stake.Completed || stake.Status != wager.StatusPending {
			continue
		}

		f.credits[stake.UserID] += stake.Amount
		stake.Completed = true
		count++
	}

	return count, nil
}

func (f *fakeStore) PayWinners(_ context.Context, stakes []*wager.Stake) (map[int64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	credits := make(map[int64]int64)
	for _, stake := range stakes {
		credits[stake.UserID] += stake.PayoutAmount
		f.credits[stake.UserID] += stake.PayoutAmount
	}

	return credits, nil
}

func (f *fakeStore) creditedTo(userID int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.credits[userID]
}
