package wager

import (
	"context"
	"database/sql"
	"time"

	"livegames-server/pkg/db"
)

// Status is a stake's lifecycle status
type Status string

// stake statuses. A stake is pending until the round's outcome is decided,
// then transitions to won or lost exactly once.
const (
	StatusPending Status = "pending"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

const stakeColumns = `
stakes.id,
stakes.user_id,
stakes.variant,
stakes.round,
stakes.outcome_id,
stakes.amount,
stakes.payout_amount,
stakes.status,
stakes.completed,
stakes.created,
stakes.updated`

// Stake is a record in the `stakes` table.
// Completed is set once by the settlement processor and guards against double payment.
type Stake struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Variant      Variant   `json:"variant"`
	Round        int64     `json:"round"`
	OutcomeID    int       `json:"outcomeId"`
	Amount       int64     `json:"amount"`
	PayoutAmount int64     `json:"payoutAmount"`
	Status       Status    `json:"status"`
	Completed    bool      `json:"completed"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getStakeByRow(row db.Scanner) (*Stake, error) {
	var stake Stake
	if err := row.Scan(&stake.ID, &stake.UserID, &stake.Variant, &stake.Round, &stake.OutcomeID,
		&stake.Amount, &stake.PayoutAmount, &stake.Status, &stake.Completed, &stake.Created, &stake.Updated); err != nil {
		return nil, err
	}

	return &stake, nil
}

func getStakes(rows *sql.Rows, err error) ([]*Stake, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stakes := make([]*Stake, 0)
	for rows.Next() {
		stake, err := getStakeByRow(rows)
		if err != nil {
			return nil, err
		}

		stakes = append(stakes, stake)
	}

	return stakes, rows.Err()
}

// StakesByRound returns every stake placed on the round
func (s *Store) StakesByRound(ctx context.Context, variant Variant, round int64) ([]*Stake, error) {
	const query = `
SELECT ` + stakeColumns + `
FROM stakes
WHERE variant = $1 AND round = $2
ORDER BY id`

	return getStakes(s.db.QueryContext(ctx, query, variant, round))
}

// CompletedStakes returns all settled-and-paid stakes for the variant.
// The outcome selector derives the house bankroll from these.
func (s *Store) CompletedStakes(ctx context.Context, variant Variant) ([]*Stake, error) {
	const query = `
SELECT ` + stakeColumns + `
FROM stakes
WHERE variant = $1 AND completed
ORDER BY id`

	return getStakes(s.db.QueryContext(ctx, query, variant))
}

// UserStakes returns a user's stake history, newest first
func (s *Store) UserStakes(ctx context.Context, userID int64, offset int64, limit int) ([]*Stake, error) {
	const query = `
SELECT ` + stakeColumns + `
FROM stakes
WHERE user_id = $1
ORDER BY id DESC
OFFSET $2
LIMIT $3`

	return getStakes(s.db.QueryContext(ctx, query, userID, offset, limit))
}

// TagStatuses marks the round's pending stakes won or lost based on the
// winning outcome. Both updates happen in one transaction so no reader can
// observe a round with winners tagged but losers still pending.
func (s *Store) TagStatuses(ctx context.Context, variant Variant, round int64, winningOutcome int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const wonQuery = `
UPDATE stakes
SET status = 'won', updated = (NOW() AT TIME ZONE 'utc')
WHERE variant = $1 AND round = $2 AND outcome_id = $3 AND status = 'pending'`

	if _, err := tx.ExecContext(ctx, wonQuery, variant, round, winningOutcome); err != nil {
		rollback(tx)
		return err
	}

	const lostQuery = `
UPDATE stakes
SET status = 'lost', updated = (NOW() AT TIME ZONE 'utc')
WHERE variant = $1 AND round = $2 AND outcome_id <> $3 AND status = 'pending'`

	if _, err := tx.ExecContext(ctx, lostQuery, variant, round, winningOutcome); err != nil {
		rollback(tx)
		return err
	}

	return tx.Commit()
}

// MarkCompleted sets completed on every stake of the round.
// Calling it a second time changes nothing and reports no error.
func (s *Store) MarkCompleted(ctx context.Context, variant Variant, round int64) error {
	const query = `
UPDATE stakes
SET completed = TRUE, updated = (NOW() AT TIME ZONE 'utc')
WHERE variant = $1 AND round = $2 AND NOT completed`

	_, err := s.db.ExecContext(ctx, query, variant, round)
	return err
}

// RefundUncompleted voids a round that never settled: every uncompleted
// pending stake is refunded its amount and marked completed. A completed
// stake that is still pending is the persisted marker of a voided wager.
// Returns the number of stakes refunded.
func (s *Store) RefundUncompleted(ctx context.Context, variant Variant, round int64) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	const selectQuery = `
SELECT user_id, amount
FROM stakes
WHERE variant = $1 AND round = $2 AND NOT completed AND status = 'pending'
FOR UPDATE`

	rows, err := tx.QueryContext(ctx, selectQuery, variant, round)
	if err != nil {
		rollback(tx)
		return 0, err
	}

	refunds := make(map[int64]int64)
	count := 0
	for rows.Next() {
		var userID, amount int64
		if err := rows.Scan(&userID, &amount); err != nil {
			rows.Close()
			rollback(tx)
			return 0, err
		}

		refunds[userID] += amount
		count++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		rollback(tx)
		return 0, err
	}

	const creditQuery = `
UPDATE users
SET balance = balance + $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	for userID, amount := range refunds {
		if _, err := tx.ExecContext(ctx, creditQuery, amount, userID); err != nil {
			rollback(tx)
			return 0, err
		}
	}

	const completeQuery = `
UPDATE stakes
SET completed = TRUE, updated = (NOW() AT TIME ZONE 'utc')
WHERE variant = $1 AND round = $2 AND NOT completed AND status = 'pending'`

	if _, err := tx.ExecContext(ctx, completeQuery, variant, round); err != nil {
		rollback(tx)
		return 0, err
	}

	return count, tx.Commit()
}
