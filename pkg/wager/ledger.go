package wager

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
)

// Window reports whether stakes may still be placed on a round.
// The round scheduler is the authority: the window is open while the round is
// in the countdown phase and the countdown is strictly above the close threshold.
type Window interface {
	Open(round int64) bool
}

// PlaceStakeRequest is a request to place a single stake
type PlaceStakeRequest struct {
	UserID    int64   `json:"userId"`
	Variant   Variant `json:"variant"`
	OutcomeID int     `json:"outcomeId"`
	Amount    int64   `json:"amount"`
	Payout    int64   `json:"expectedPayout"`
}

func (r PlaceStakeRequest) validate() error {
	if r.OutcomeID < 1 || r.OutcomeID > r.Variant.Outcomes() {
		return ErrInvalidOutcome
	}

	if r.Amount <= 0 || r.Payout <= 0 {
		return ErrInvalidAmount
	}

	return nil
}

// PlacedStake is the successful result of a stake placement
type PlacedStake struct {
	Stake      *Stake `json:"stake"`
	NewBalance int64  `json:"newBalance"`
}

// PlaceStake places a stake on the current round of the variant.
// The balance deduction and the stake insert happen in one transaction with
// the user's row locked, so concurrent placements by the same user serialize
// and can never drive the balance negative. The betting window is re-checked
// immediately before commit: a placement that validated while the window was
// open but lost the race with the scheduler is rolled back with BettingClosed.
func (s *Store) PlaceStake(ctx context.Context, window Window, req PlaceStakeRequest) (*PlacedStake, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	round, err := s.LastRound(ctx, req.Variant)
	if err != nil {
		return nil, err
	}

	if !window.Open(round.Round) {
		return nil, ErrBettingClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	newBalance, err := debitBalance(ctx, tx, req.UserID, req.Amount)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	const insertQuery = `
INSERT INTO stakes (user_id, variant, round, outcome_id, amount, payout_amount)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + stakeColumns

	row := tx.QueryRowContext(ctx, insertQuery, req.UserID, req.Variant, round.Round, req.OutcomeID, req.Amount, req.Payout)
	stake, err := getStakeByRow(row)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	// reject-at-commit: the scheduler may have crossed the close threshold
	// between the validation above and now
	if !window.Open(round.Round) {
		rollback(tx)
		return nil, ErrBettingClosed
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user":    req.UserID,
		"variant": req.Variant,
		"round":   round.Round,
		"outcome": req.OutcomeID,
		"amount":  req.Amount,
	}).Info("stake placed")

	return &PlacedStake{Stake: stake, NewBalance: newBalance}, nil
}

// BatchEntry is one outcome of a combination stake
type BatchEntry struct {
	OutcomeID  int   `json:"outcomeId"`
	Multiplier int64 `json:"multiplier"`
}

// PlaceStakeBatch places one stake of amount on each entry's outcome in a
// single transaction with one combined balance deduction. The whole batch
// succeeds or fails together.
func (s *Store) PlaceStakeBatch(ctx context.Context, window Window, userID int64, variant Variant, amount int64, entries []BatchEntry) ([]*Stake, int64, error) {
	if amount <= 0 || len(entries) == 0 {
		return nil, 0, ErrInvalidAmount
	}

	for _, entry := range entries {
		if entry.OutcomeID < 1 || entry.OutcomeID > variant.Outcomes() {
			return nil, 0, ErrInvalidOutcome
		}

		if entry.Multiplier <= 0 {
			return nil, 0, ErrInvalidAmount
		}
	}

	round, err := s.LastRound(ctx, variant)
	if err != nil {
		return nil, 0, err
	}

	if !window.Open(round.Round) {
		return nil, 0, ErrBettingClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}

	total := amount * int64(len(entries))
	newBalance, err := debitBalance(ctx, tx, userID, total)
	if err != nil {
		rollback(tx)
		return nil, 0, err
	}

	const insertQuery = `
INSERT INTO stakes (user_id, variant, round, outcome_id, amount, payout_amount)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + stakeColumns

	stakes := make([]*Stake, 0, len(entries))
	for _, entry := range entries {
		row := tx.QueryRowContext(ctx, insertQuery, userID, variant, round.Round, entry.OutcomeID, amount, amount*entry.Multiplier)
		stake, err := getStakeByRow(row)
		if err != nil {
			rollback(tx)
			return nil, 0, err
		}

		stakes = append(stakes, stake)
	}

	if !window.Open(round.Round) {
		rollback(tx)
		return nil, 0, ErrBettingClosed
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return stakes, newBalance, nil
}

// debitBalance locks the user's row, checks the balance, and deducts amount.
// Must be called within a transaction.
func debitBalance(ctx context.Context, tx *sql.Tx, userID, amount int64) (int64, error) {
	const lockQuery = `
SELECT balance
FROM users
WHERE id = $1
FOR UPDATE`

	var balance int64
	if err := tx.QueryRowContext(ctx, lockQuery, userID).Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrUserNotFound
		}

		return 0, err
	}

	if balance < amount {
		return 0, ErrInsufficientBalance
	}

	const debitQuery = `
UPDATE users
SET balance = balance - $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
RETURNING balance`

	var newBalance int64
	if err := tx.QueryRowContext(ctx, debitQuery, amount, userID).Scan(&newBalance); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// groupPayouts sums payout amounts per user
func groupPayouts(stakes []*Stake) map[int64]int64 {
	credits := make(map[int64]int64)
	for _, stake := range stakes {
		credits[stake.UserID] += stake.PayoutAmount
	}

	return credits
}

// PayWinners credits each winning user's balance by the sum of their payout
// amounts. Each user's credit is a single atomic statement. Returns the
// credited total per user.
func (s *Store) PayWinners(ctx context.Context, stakes []*Stake) (map[int64]int64, error) {
	credits := groupPayouts(stakes)

	const creditQuery = `
UPDATE users
SET balance = balance + $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	for userID, total := range credits {
		if _, err := s.db.ExecContext(ctx, creditQuery, total, userID); err != nil {
			return nil, err
		}

		logrus.WithFields(logrus.Fields{
			"user":  userID,
			"total": total,
		}).Info("paid winning stakes")
	}

	return credits, nil
}
