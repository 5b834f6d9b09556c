package searcher

import (
	"errors"
	"heart/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Rewards estimate the chance of surviving
const Win = 1.0
const Loss = 1 - Win

var ErrActionMismatch = errors.New("action count does not match table entry")

// Segment is one decision of an episode: the canonical state and the index
// of the action chosen there. Actions counts the legal actions plus pass.
type Segment struct {
	Key     game.Key
	Action  int
	Actions int
}
