package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"livegames-server/pkg/publish"
	"livegames-server/pkg/snapshot"
	"livegames-server/pkg/threecard"
	"livegames-server/pkg/wager"
)

// Config drives a variant's round timing.
// All durations except Tick are expressed in countdown ticks.
type Config struct {
	Variant wager.Variant

	// Countdown is the number of ticks a round accepts and then resolves stakes
	Countdown int

	// CalculationThreshold is the tick at which the betting window closes and
	// the outcome is decided
	CalculationThreshold int

	// Cooldown is the number of ticks between a finished round and the next
	Cooldown int

	// RetryDelay and MaxRetries bound how persistence failures are retried
	RetryDelay time.Duration
	MaxRetries int

	// Tick is the real duration of one countdown tick. Zero means one second.
	Tick time.Duration
}

func (c Config) tick() time.Duration {
	if c.Tick > 0 {
		return c.Tick
	}

	return time.Second
}

// roundState is the scheduler's view of the in-flight round
type roundState struct {
	round     int64
	phase     wager.Phase
	countdown int
	outcome   *int
	hands     []threecard.Hand
}

// Scheduler runs a variant's recurring rounds: countdown, outcome decision at
// the close threshold, settlement, cooldown, repeat. It is also the authority
// on the betting window via Open.
type Scheduler struct {
	config    Config
	store     Store
	selector  *Selector
	hands     *threecard.Generator
	snapshots *snapshot.Store
	publisher publish.Publisher
	logger    logrus.FieldLogger

	mu    sync.Mutex
	state roundState
}

// NewScheduler returns a scheduler for the variant. hands may be nil for
// variants without dealt cards.
func NewScheduler(config Config, store Store, selector *Selector, hands *threecard.Generator, snapshots *snapshot.Store, publisher publish.Publisher) *Scheduler {
	return &Scheduler{
		config:    config,
		store:     store,
		selector:  selector,
		hands:     hands,
		snapshots: snapshots,
		publisher: publisher,
		logger:    logrus.WithField("variant", config.Variant),
		state:     roundState{phase: wager.PhaseWaiting},
	}
}

// Open implements wager.Window. The window is open only for the in-flight
// round, while it is counting down strictly above the close threshold.
func (s *Scheduler) Open(round int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.phase == wager.PhaseCountdown &&
		s.state.round == round &&
		s.state.countdown > s.config.CalculationThreshold
}

// Run drives rounds until the context is canceled. Before the first round it
// recovers the last persisted round: an interrupted round with a decided
// outcome is settled again (settlement is idempotent), one without is voided
// and its stakes refunded.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("scheduler started")

	next, err := s.recoverLast(ctx)
	if err != nil {
		s.logger.WithError(err).Error("recovery failed, stopping")
		return
	}

	for {
		if err := s.playRound(ctx, next); err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				s.logger.Info("scheduler stopped")
				return
			}

			s.logger.WithError(err).WithField("round", next).Error("round failed, stopping")
			return
		}

		next++
	}
}

func (s *Scheduler) recoverLast(ctx context.Context) (int64, error) {
	last, err := s.store.LastRound(ctx, s.config.Variant)
	if err != nil {
		if errors.Is(err, wager.ErrRoundNotFound) {
			return 1, nil
		}

		return 0, err
	}

	if last.WinningOutcome != nil {
		if _, err := Settle(ctx, s.store, s.config.Variant, last.Round, *last.WinningOutcome); err != nil {
			return 0, err
		}

		s.logger.WithField("round", last.Round).Info("resumed settlement of interrupted round")
	} else {
		count, err := s.store.RefundUncompleted(ctx, s.config.Variant, last.Round)
		if err != nil {
			return 0, err
		}

		s.logger.WithFields(logrus.Fields{
			"round":    last.Round,
			"refunded": count,
		}).Info("voided interrupted round")
	}

	return last.Round + 1, nil
}

func (s *Scheduler) playRound(ctx context.Context, roundNumber int64) error {
	err := s.withRetry(ctx, "create round", func() error {
		_, err := s.store.CreateRound(ctx, s.config.Variant, roundNumber)
		return err
	})
	if err != nil {
		return err
	}

	s.transition(publish.RoundStarted, func(state *roundState) {
		*state = roundState{
			round:     roundNumber,
			phase:     wager.PhaseCountdown,
			countdown: s.config.Countdown,
		}
	})

	ticker := time.NewTicker(s.config.tick())
	defer ticker.Stop()

	var outcome int
	for remaining := s.config.Countdown; remaining > 0; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		remaining--
		if remaining == s.config.CalculationThreshold {
			s.transition(publish.CalculationStarted, func(state *roundState) {
				state.phase = wager.PhaseCalculating
				state.countdown = remaining
			})

			if err := s.decideOutcome(ctx, roundNumber, &outcome); err != nil {
				return err
			}

			// resume the countdown; Open stays false below the threshold
			s.transition(publish.WinningOutcomeGenerated, func(state *roundState) {
				state.outcome = &outcome
				state.phase = wager.PhaseCountdown
			})

			continue
		}

		s.transition(publish.CountdownTick, func(state *roundState) {
			state.countdown = remaining
		})
	}

	var results *Results
	err = s.withRetry(ctx, "settle round", func() error {
		var err error
		results, err = Settle(ctx, s.store, s.config.Variant, roundNumber, outcome)
		return err
	})
	if err != nil {
		return err
	}

	s.transition(publish.RoundFinished, func(state *roundState) {
		state.phase = wager.PhaseFinished
		state.countdown = 0
	})

	s.logger.WithFields(logrus.Fields{
		"round":         results.Round,
		"outcome":       results.WinningOutcome,
		"stakes":        results.TotalStakes,
		"winningStakes": results.WinningStakes,
		"winRate":       results.WinRate,
	}).Info("round finished")

	for i := 0; i < s.config.Cooldown; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

// decideOutcome selects and persists the winning outcome, and deals hands for
// card variants. A retry that finds the outcome already persisted adopts it.
func (s *Scheduler) decideOutcome(ctx context.Context, roundNumber int64, outcome *int) error {
	err := s.withRetry(ctx, "decide outcome", func() error {
		current, err := s.store.StakesByRound(ctx, s.config.Variant, roundNumber)
		if err != nil {
			return err
		}

		history, err := s.store.CompletedStakes(ctx, s.config.Variant)
		if err != nil {
			return err
		}

		*outcome = s.selector.Select(s.config.Variant, current, history)
		err = s.store.SetWinningOutcome(ctx, s.config.Variant, roundNumber, *outcome)
		if errors.Is(err, wager.ErrOutcomeAlreadySet) {
			round, lastErr := s.store.LastRound(ctx, s.config.Variant)
			if lastErr != nil {
				return lastErr
			}

			if round.Round == roundNumber && round.WinningOutcome != nil {
				*outcome = *round.WinningOutcome
				err = nil
			}
		}
		if err != nil {
			return err
		}

		// tag won/lost in the same pass; settlement's re-tag is a no-op
		return s.store.TagStatuses(ctx, s.config.Variant, roundNumber, *outcome)
	})
	if err != nil {
		return err
	}

	if s.hands == nil {
		return nil
	}

	return s.withRetry(ctx, "deal hands", func() error {
		hands, err := s.hands.Generate(*outcome)
		if err != nil {
			return err
		}

		s.mu.Lock()
		s.state.hands = hands
		s.mu.Unlock()

		return nil
	})
}

// transition mutates the round state under the lock, then publishes the new
// snapshot and the lifecycle event
func (s *Scheduler) transition(eventType publish.Type, mutate func(*roundState)) {
	s.mu.Lock()
	mutate(&s.state)

	state := snapshot.State{
		Variant:        s.config.Variant,
		Round:          s.state.round,
		Phase:          s.state.phase,
		Countdown:      s.state.countdown,
		WinningOutcome: s.state.outcome,
	}
	if s.state.hands != nil && s.state.outcome != nil {
		state.Hands = snapshot.Hands(s.state.hands, *s.state.outcome)
	}
	s.mu.Unlock()

	stored := s.snapshots.Put(state)
	s.publisher.Publish(publish.Event{Type: eventType, State: stored})
}

func (s *Scheduler) withRetry(ctx context.Context, op string, fn func() error) error {
	retries := s.config.MaxRetries
	if retries < 1 {
		retries = 1
	}

	var err error
	for attempt := 1; attempt <= retries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		s.logger.WithError(err).WithFields(logrus.Fields{
			"op":      op,
			"attempt": attempt,
		}).Error("operation failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.config.RetryDelay):
		}
	}

	return err
}
