package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"livegames-server/internal/config"
	"livegames-server/pkg/db"
	"livegames-server/pkg/wager"
)

var (
	configPath  = flag.String("config", "config.yaml", "path to the configuration file")
	command     = flag.String("c", "user", "specifies the command (user)")
	displayName = flag.String("name", "", "display name for the new user")
	balance     = flag.Int64("balance", 1000, "starting balance for the new user")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}

	dbh, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	switch *command {
	case "user":
		if *displayName == "" {
			logrus.Fatal("-name is required")
		}

		store := wager.NewStore(dbh)
		user, err := store.CreateUser(context.Background(), *displayName, *balance)
		if err != nil {
			logrus.WithError(err).Fatal("could not create user")
		}

		fmt.Printf("Created user %d with balance %d\n", user.ID, user.Balance)

	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}
