package wager

import (
	"context"
	"database/sql"
	"time"

	"livegames-server/pkg/db"
)

const userColumns = `
users.id,
users.display_name,
users.balance,
users.created,
users.updated`

// User is a record in the `users` table.
// Balance is the user's stake-unit balance; it is only mutated by stake
// placement (decrement) and settlement payout (increment).
type User struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	Balance     int64     `json:"balance"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

func getUserByRow(row db.Scanner) (*User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.DisplayName, &user.Balance, &user.Created, &user.Updated); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns a user based on the ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	user, err := getUserByRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

// CreateUser creates a new user with the starting balance
func (s *Store) CreateUser(ctx context.Context, displayName string, balance int64) (*User, error) {
	const query = `
INSERT INTO users (display_name, balance)
VALUES ($1, $2)
RETURNING ` + userColumns

	return getUserByRow(s.db.QueryRowContext(ctx, query, displayName, balance))
}
