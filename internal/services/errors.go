package services

import "errors"

// Typed failures the handlers branch on. Conflict-shaped outcomes
// (already answered, like toggled twice) are results, not errors.
var (
	ErrNotFound             = errors.New("not found")
	ErrStaleQuestion        = errors.New("question is not the active question")
	ErrAnswerDeadlinePassed = errors.New("answer window has closed")
	ErrNumberPoolExhausted  = errors.New("no participant numbers left in category")
	ErrRegistrationBusy     = errors.New("registration contention, retry")
	ErrUnknownCategory      = errors.New("unknown participant category")
	ErrInsufficientEligible = errors.New("not enough eligible participants for draw")
)
