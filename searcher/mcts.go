package searcher

import (
	"fmt"
	"heart/experiments/metrics"
	"heart/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS learns which card to play in each canonical state by running whole
// episodes, picking actions by UCB1 and backing the terminal reward up to
// every decision it made.
type MCTS struct {
	scenario    game.Scenario
	composition game.Composition
	cSquared    float64
	table       *Table
	metrics     metrics.Collector
}

func WithExploreFactor(cSquared float64) Option {
	return func(m *MCTS) {
		if cSquared > 0 {
			m.cSquared = cSquared
		}
	}
}

// WithTable shares an existing table instead of starting an empty one.
func WithTable(table *Table) Option {
	return func(m *MCTS) {
		if table != nil {
			m.table = table
		}
	}
}

func WithComposition(composition game.Composition) Option {
	return func(m *MCTS) {
		if composition != nil {
			m.composition = composition
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMCTS(scenario game.Scenario, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		scenario:    scenario,
		composition: game.DefaultComposition(),
		cSquared:    CSquared,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.table == nil {
		m.table = NewTable()
	}
	return m
}

// Table returns the learned table. It persists across episodes.
func (m *MCTS) Table() *Table {
	return m.table
}

// RunEpisode deals a fresh turn, plays it out and learns from the result.
func (m *MCTS) RunEpisode(rng *rand.Rand) (bool, error) {
	state, err := m.scenario.Deal(m.composition, rng)
	if err != nil {
		return false, err
	}
	return m.Simulate(state)
}

// Simulate plays state to the end of the turn and backs up the reward. The
// state is consumed.
func (m *MCTS) Simulate(state *game.State) (bool, error) {
	path, reward, err := rollout(state, m.table, m.cSquared)
	if err != nil {
		return false, err
	}
	if err := m.table.backup(path, reward); err != nil {
		return false, err
	}

	survived := reward == Win
	m.metrics.AddEpisode(survived)
	m.metrics.AddDecisions(len(path))
	if e := log.Debug(); e.Enabled() {
		e.Msgf("episode from state %d survived=%t after %d decisions", path[0].Key.Hash(), survived, len(path))
	}
	return survived, nil
}

// rollout chooses actions until it passes. Pass is the last action index.
func rollout(state *game.State, table *Table, cSquared float64) ([]Segment, float64, error) {
	path := []Segment{}
	for {
		state.SortHand()
		actions := state.LegalActions()
		key := state.Key()

		choice, err := table.choose(key, len(actions)+1, cSquared)
		if err != nil {
			return nil, Loss, err
		}
		path = append(path, Segment{Key: key, Action: choice, Actions: len(actions) + 1})

		if choice == len(actions) {
			break
		}
		if err := state.Play(actions[choice]); err != nil {
			return nil, Loss, fmt.Errorf("failed to play action %d: %w", choice, err)
		}
	}

	if _, ok := state.Survive(); ok {
		return path, Win, nil
	}
	return path, Loss, nil
}
