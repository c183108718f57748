package wager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceStakeRequest_validate(t *testing.T) {
	a := assert.New(t)

	req := PlaceStakeRequest{Variant: Greedy, OutcomeID: 2, Amount: 30, Payout: 90}
	a.NoError(req.validate())

	req.OutcomeID = 0
	a.Equal(ErrInvalidOutcome, req.validate())

	req.OutcomeID = 9
	a.Equal(ErrInvalidOutcome, req.validate())

	req.Variant = TeenPatti
	req.OutcomeID = 4
	a.Equal(ErrInvalidOutcome, req.validate())

	req.OutcomeID = 3
	req.Amount = 0
	a.Equal(ErrInvalidAmount, req.validate())

	req.Amount = 30
	req.Payout = -1
	a.Equal(ErrInvalidAmount, req.validate())
}

func TestGroupPayouts(t *testing.T) {
	a := assert.New(t)

	stakes := []*Stake{
		{UserID: 1, PayoutAmount: 90},
		{UserID: 2, PayoutAmount: 45},
		{UserID: 1, PayoutAmount: 10},
	}

	credits := groupPayouts(stakes)
	a.Equal(map[int64]int64{1: 100, 2: 45}, credits)

	a.Empty(groupPayouts(nil))
}

func TestKind(t *testing.T) {
	a := assert.New(t)

	a.Equal("InsufficientBalance", Kind(ErrInsufficientBalance))
	a.Equal("BettingClosed", Kind(ErrBettingClosed))
	a.Equal("", Kind(ErrUserNotFound))
	a.Equal("", Kind(nil))
}

func TestVariant_Outcomes(t *testing.T) {
	a := assert.New(t)

	a.Equal(8, Greedy.Outcomes())
	a.Equal(3, TeenPatti.Outcomes())
	a.Equal(0, Variant("unknown").Outcomes())

	a.False(Greedy.HasHands())
	a.True(TeenPatti.HasHands())
}
