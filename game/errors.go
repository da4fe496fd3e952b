package game

import "errors"

var (
	// ErrIllegalAction is returned by Apply for an action outside LegalActions.
	ErrIllegalAction = errors.New("illegal action")
	// ErrInvariantViolation means the rules engine produced a corrupted state.
	ErrInvariantViolation = errors.New("invariant violation")
	ErrCardNotFound       = errors.New("card not found")
	ErrInvalidToken       = errors.New("invalid card token")
)
