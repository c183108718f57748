package main

import (
	"database/sql"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"livegames-server/internal/config"
	"livegames-server/pkg/db"
)

var configPath = flag.String("config", "config.yaml", "path to the configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}

	dbh := waitForDB(cfg.PGDSN)
	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}
}

func waitForDB(dsn string) *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	for {
		select {
		case <-timeout.C:
			logrus.Fatal("could not connect to database")
		default:
			if dbh, err := db.Connect(dsn); err == nil {
				return dbh
			}

			time.Sleep(time.Millisecond * 500)
		}
	}
}
