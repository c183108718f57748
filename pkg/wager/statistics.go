package wager

import (
	"context"
	"database/sql"
	"math"
)

// Statistics are lifetime aggregates for a variant
type Statistics struct {
	TotalRounds        int64   `json:"totalRounds"`
	TotalStakes        int64   `json:"totalStakes"`
	TotalWinningStakes int64   `json:"totalWinningStakes"`
	AverageWinRate     float64 `json:"averageWinRate"`
	MostWinningOutcome *int    `json:"mostWinningOutcome"`
}

// Statistics returns lifetime statistics over the variant's completed stakes
func (s *Store) Statistics(ctx context.Context, variant Variant) (*Statistics, error) {
	stats := &Statistics{}

	const roundsQuery = `
SELECT COUNT(*)
FROM rounds
WHERE variant = $1`

	if err := s.db.QueryRowContext(ctx, roundsQuery, variant).Scan(&stats.TotalRounds); err != nil {
		return nil, err
	}

	const stakesQuery = `
SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'won')
FROM stakes
WHERE variant = $1 AND completed`

	if err := s.db.QueryRowContext(ctx, stakesQuery, variant).Scan(&stats.TotalStakes, &stats.TotalWinningStakes); err != nil {
		return nil, err
	}

	if stats.TotalStakes > 0 {
		rate := float64(stats.TotalWinningStakes) / float64(stats.TotalStakes) * 100
		stats.AverageWinRate = math.Round(rate*100) / 100
	}

	const outcomeQuery = `
SELECT outcome_id
FROM stakes
WHERE variant = $1 AND completed AND status = 'won'
GROUP BY outcome_id
ORDER BY COUNT(*) DESC, outcome_id
LIMIT 1`

	var outcome int
	if err := s.db.QueryRowContext(ctx, outcomeQuery, variant).Scan(&outcome); err != nil {
		if err != sql.ErrNoRows {
			return nil, err
		}
	} else {
		stats.MostWinningOutcome = &outcome
	}

	return stats, nil
}
