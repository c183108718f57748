package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"livegames-server/internal/config"
	"livegames-server/internal/rng"
	"livegames-server/internal/util"
	"livegames-server/pkg/db"
	"livegames-server/pkg/engine"
	"livegames-server/pkg/publish"
	"livegames-server/pkg/snapshot"
	"livegames-server/pkg/threecard"
	"livegames-server/pkg/wager"
)

// Version is the server version
var Version = "v0.0.0-dev"

var configPath = flag.String("config", "config.yaml", "path to the configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}

	setupLogger(cfg)
	logrus.WithField("version", Version).Info("starting live games server")

	dbh, err := db.Connect(cfg.PGDSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	store := wager.NewStore(dbh)
	hub := publish.NewHub()
	snapshots := snapshot.NewStore()

	schedulers := []*engine.Scheduler{
		engine.NewScheduler(schedulerConfig(wager.Greedy, cfg.Greedy), store,
			engine.NewSelector(rng.Crypto{}), nil, snapshots, hub),
		engine.NewScheduler(schedulerConfig(wager.TeenPatti, cfg.TeenPatti), store,
			engine.NewSelector(rng.Crypto{}), threecard.NewGenerator(rng.Crypto{}), snapshots, hub),
	}

	ctx, cancel := context.WithCancel(context.Background())

	go logEvents(hub)

	var wg sync.WaitGroup
	for _, scheduler := range schedulers {
		wg.Add(1)
		go func(s *engine.Scheduler) {
			defer wg.Done()
			s.Run(ctx)
		}(scheduler)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logrus.Info("shutting down")
	cancel()
	wg.Wait()
}

func schedulerConfig(variant wager.Variant, v config.Variant) engine.Config {
	return engine.Config{
		Variant:              variant,
		Countdown:            v.CountdownSeconds,
		CalculationThreshold: v.CalculationThreshold,
		Cooldown:             v.CooldownSeconds,
		RetryDelay:           time.Duration(v.RetryDelaySeconds) * time.Second,
		MaxRetries:           v.MaxRetries,
	}
}

// logEvents traces the round lifecycle at debug level
func logEvents(hub *publish.Hub) {
	_, events := hub.Subscribe()
	for event := range events {
		logrus.WithFields(logrus.Fields{
			"type":    event.Type,
			"variant": event.State.Variant,
			"round":   event.State.Round,
			"phase":   event.State.Phase,
		}).Debug("round event")
	}
}

func setupLogger(cfg config.Config) {
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(util.Getenv("LOG_FORMAT", "text")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
