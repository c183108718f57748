package wager

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"livegames-server/pkg/db"
)

// ErrOutcomeAlreadySet happens if a round's winning outcome is written twice
var ErrOutcomeAlreadySet = errors.New("winning outcome has already been set")

const roundColumns = `
rounds.id,
rounds.variant,
rounds.round,
rounds.winning_outcome,
rounds.created,
rounds.updated`

// Round is a record in the `rounds` table.
// Round numbers are monotonically increasing per variant. WinningOutcome is
// nil until the outcome selector decides the round.
type Round struct {
	ID             int64     `json:"id"`
	Variant        Variant   `json:"variant"`
	Round          int64     `json:"round"`
	WinningOutcome *int      `json:"winningOutcome"`
	Created        time.Time `json:"created"`
	Updated        time.Time `json:"updated"`
}

func getRoundByRow(row db.Scanner) (*Round, error) {
	var round Round
	var winningOutcome sql.NullInt64

	if err := row.Scan(&round.ID, &round.Variant, &round.Round, &winningOutcome, &round.Created, &round.Updated); err != nil {
		return nil, err
	}

	if winningOutcome.Valid {
		outcome := int(winningOutcome.Int64)
		round.WinningOutcome = &outcome
	}

	return &round, nil
}

// CreateRound creates the next round for the variant
func (s *Store) CreateRound(ctx context.Context, variant Variant, round int64) (*Round, error) {
	const query = `
INSERT INTO rounds (variant, round)
VALUES ($1, $2)
RETURNING ` + roundColumns

	return getRoundByRow(s.db.QueryRowContext(ctx, query, variant, round))
}

// LastRound returns the most recent round for the variant.
// If no round exists, ErrRoundNotFound is returned.
func (s *Store) LastRound(ctx context.Context, variant Variant) (*Round, error) {
	const query = `
SELECT ` + roundColumns + `
FROM rounds
WHERE variant = $1
ORDER BY id DESC
LIMIT 1`

	round, err := getRoundByRow(s.db.QueryRowContext(ctx, query, variant))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoundNotFound
		}

		return nil, err
	}

	return round, nil
}

// SetWinningOutcome records the round's winning outcome.
// The outcome may only be written once; a second write returns ErrOutcomeAlreadySet.
func (s *Store) SetWinningOutcome(ctx context.Context, variant Variant, round int64, outcome int) error {
	const query = `
UPDATE rounds
SET winning_outcome = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE variant = $2 AND round = $3 AND winning_outcome IS NULL`

	res, err := s.db.ExecContext(ctx, query, outcome, variant, round)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrOutcomeAlreadySet
	}

	return nil
}

// Rounds returns round history for the variant, newest first
func (s *Store) Rounds(ctx context.Context, variant Variant, offset int64, limit int) ([]*Round, error) {
	const query = `
SELECT ` + roundColumns + `
FROM rounds
WHERE variant = $1
ORDER BY round DESC
OFFSET $2
LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, variant, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*Round, 0)
	for rows.Next() {
		round, err := getRoundByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, round)
	}

	return records, rows.Err()
}
