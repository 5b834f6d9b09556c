// Package heuristic plays the turn with a fixed priority list. It is the
// baseline the learners are measured against.
package heuristic

import (
	"fmt"
	"heart/experiments/metrics"
	"heart/game"

	"golang.org/x/exp/rand"
)

type rule struct {
	card  game.Card
	times int // Copies played when the rule fires
	when  func(s *game.State) bool
}

// Rules are tried top to bottom after every play. The turn ends when none fire.
var rules = []rule{
	{card: game.Apparition, times: 1, when: func(s *game.State) bool {
		return s.Energy >= 1
	}},
	// Once weak is applied, two Defends beat a Leg Sweep for the same energy
	{card: game.Defend, times: 2, when: func(s *game.State) bool {
		return s.Weak > 0 && s.Count(game.Defend) >= 2 && s.Energy == 2
	}},
	{card: game.LegSweep, times: 1, when: func(s *game.State) bool {
		return s.Energy >= 2
	}},
	{card: game.Neutralize, times: 1, when: func(s *game.State) bool {
		return s.Weak == 0
	}},
	{card: game.CripplingCloud, times: 1, when: func(s *game.State) bool {
		return s.Weak == 0 && s.Energy >= 2
	}},
	{card: game.Defend, times: 1, when: func(s *game.State) bool {
		return s.Energy > 1
	}},
	{card: game.DaggerThrow, times: 1, when: func(s *game.State) bool {
		return s.Energy >= 1
	}},
	{card: game.Neutralize, times: 1, when: func(s *game.State) bool {
		return true
	}},
	{card: game.Expertise, times: 1, when: func(s *game.State) bool {
		return s.Energy >= 1
	}},
	{card: game.Cost1Attack, times: 1, when: func(s *game.State) bool {
		return s.Energy >= 1 && s.AttackChain%game.ChainLength == game.ChainLength-1
	}},
}

// Play plays state until no rule fires and reports survival. The state is consumed.
func Play(state *game.State) (bool, error) {
	for {
		r, ok := next(state)
		if !ok {
			break
		}
		for n := 0; n < r.times; n++ {
			i, ok := state.InHand(r.card)
			if !ok {
				return false, fmt.Errorf("rule for %s fired without the card in hand", r.card)
			}
			if err := state.Play(i); err != nil {
				return false, err
			}
		}
	}
	_, ok := state.Survive()
	return ok, nil
}

func next(state *game.State) (rule, bool) {
	for _, r := range rules {
		if state.Count(r.card) >= r.times && r.when(state) {
			return r, true
		}
	}
	return rule{}, false
}

// Baseline runs the fixed policy on freshly dealt turns.
type Baseline struct {
	scenario    game.Scenario
	composition game.Composition
	metrics     metrics.Collector
}

func NewBaseline(scenario game.Scenario, composition game.Composition, collector metrics.Collector) *Baseline {
	if composition == nil {
		composition = game.DefaultComposition()
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &Baseline{scenario: scenario, composition: composition, metrics: collector}
}

func (b *Baseline) RunEpisode(rng *rand.Rand) (bool, error) {
	state, err := b.scenario.Deal(b.composition, rng)
	if err != nil {
		return false, err
	}
	survived, err := Play(state)
	if err != nil {
		return false, err
	}
	b.metrics.AddEpisode(survived)
	return survived, nil
}
