package wager

import "errors"

// failure kinds returned to the inbound collaborator.
// Kinds are stable so clients can tell retryable conditions (RoundNotFound)
// from terminal ones (InsufficientBalance).
const (
	KindInvalidOutcome      = "InvalidOutcome"
	KindInvalidAmount       = "InvalidAmount"
	KindBettingClosed       = "BettingClosed"
	KindInsufficientBalance = "InsufficientBalance"
	KindRoundNotFound       = "RoundNotFound"
)

// Error is a structured failure that is safe to return in a response
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// stake placement failures
var (
	ErrInvalidOutcome      = &Error{Kind: KindInvalidOutcome, Message: "outcome is not a valid option"}
	ErrInvalidAmount       = &Error{Kind: KindInvalidAmount, Message: "stake amount must be greater than zero"}
	ErrBettingClosed       = &Error{Kind: KindBettingClosed, Message: "too late to place a stake"}
	ErrInsufficientBalance = &Error{Kind: KindInsufficientBalance, Message: "not enough stake units"}
	ErrRoundNotFound       = &Error{Kind: KindRoundNotFound, Message: "no active round found"}
)

// ErrUserNotFound happens when a stake references an unknown user.
// It is an infrastructure error, not part of the client-facing taxonomy.
var ErrUserNotFound = errors.New("user not found")

// Kind returns the failure kind for err, or the empty string if err is not a *Error
func Kind(err error) string {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Kind
	}

	return ""
}
