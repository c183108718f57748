package wager

// Phase is a stage in the round lifecycle
type Phase string

// round phases, in lifecycle order
const (
	PhaseWaiting     Phase = "waiting"
	PhaseCountdown   Phase = "countdown"
	PhaseCalculating Phase = "calculating"
	PhaseFinished    Phase = "finished"
)
