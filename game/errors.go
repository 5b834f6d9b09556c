package game

import "errors"

// Invariant violations. None of these are recoverable: they indicate a
// misconfigured scenario or a caller that ignored LegalActions.
var (
	ErrEmptyDeck          = errors.New("draw pile is empty")
	ErrInsufficientEnergy = errors.New("not enough energy to play card")
	ErrEmptyHand          = errors.New("hand is empty")
	ErrUnplayable         = errors.New("card cannot be played")
	ErrInvalidAction      = errors.New("hand index out of range")
)
