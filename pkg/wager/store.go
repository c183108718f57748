package wager

import (
	"database/sql"

	"github.com/sirupsen/logrus"
)

// Store provides access to the users, rounds and stakes tables
type Store struct {
	db *sql.DB
}

// NewStore returns a new store backed by the database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
