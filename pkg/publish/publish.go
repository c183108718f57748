// Package publish carries round lifecycle events from the engine to whatever
// transport the host process wires in. The engine only sees the Publisher
// interface; the Hub is a ready-made in-process fan-out.
package publish

import (
	"livegames-server/pkg/snapshot"
)

// Type identifies a round lifecycle event
type Type string

// event types
const (
	RoundStarted            Type = "round_started"
	CountdownTick           Type = "countdown_tick"
	CalculationStarted      Type = "calculation_started"
	WinningOutcomeGenerated Type = "winning_outcome_generated"
	RoundFinished           Type = "round_finished"
)

// Event is a round lifecycle notification carrying the state after the
// transition it announces
type Event struct {
	Type  Type           `json:"type"`
	State snapshot.State `json:"state"`
}

// Publisher sends round lifecycle events.
// Publish must not block the caller.
type Publisher interface {
	Publish(event Event)
}

// Func is an adapter to allow ordinary functions as publishers
type Func func(event Event)

// Publish calls f(event)
func (f Func) Publish(event Event) {
	f(event)
}

// Discard is a publisher that drops every event
var Discard Publisher = Func(func(Event) {})
