package policy

import (
	"fmt"
	"heart/experiments/metrics"
	"heart/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const DefaultLearningRate = 0.003

// Rewards of the policy gradient are signed
const (
	Win  = 1.0
	Loss = -1.0
)

type Option func(l *Learner)

// Learner is a linear softmax policy trained with REINFORCE at the end of
// every episode.
type Learner struct {
	scenario       game.Scenario
	composition    game.Composition
	startingEnergy int
	learningRate   float64
	weights        *Weights
	metrics        metrics.Collector
}

func WithLearningRate(lr float64) Option {
	return func(l *Learner) {
		if lr > 0 {
			l.learningRate = lr
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(l *Learner) {
		if rules.StartingEnergy > 0 {
			l.startingEnergy = rules.StartingEnergy
		}
	}
}

// WithWeights shares an existing weight table.
func WithWeights(weights *Weights) Option {
	return func(l *Learner) {
		if weights != nil {
			l.weights = weights
		}
	}
}

func WithComposition(composition game.Composition) Option {
	return func(l *Learner) {
		if composition != nil {
			l.composition = composition
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(l *Learner) {
		if collector != nil {
			l.metrics = collector
		}
	}
}

func NewLearner(scenario game.Scenario, options ...Option) (*Learner, error) {
	l := &Learner{ // Default values
		scenario:       scenario,
		composition:    game.DefaultComposition(),
		startingEnergy: game.DefaultStartingEnergy,
		learningRate:   DefaultLearningRate,
		metrics:        metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(l)
	}
	if l.weights == nil {
		l.weights = NewWeights(NumFeatures(l.startingEnergy))
	}
	if got, want := l.weights.NumFeatures(), NumFeatures(l.startingEnergy); got != want {
		return nil, fmt.Errorf("weights have %d features, starting energy %d needs %d", got, l.startingEnergy, want)
	}
	return l, nil
}

// Weights returns the learned table. It persists across episodes.
func (l *Learner) Weights() *Weights {
	return l.weights
}

// Choose samples an action for state. The returned Step's Chosen equals
// len(actions) when the policy passes.
func (l *Learner) Choose(state *game.State, actions []int, rng *rand.Rand) (Step, error) {
	features := Features(state, l.startingEnergy)
	rows := make([]int, 0, len(actions)+1)
	for _, action := range actions {
		rows = append(rows, int(state.Hand[action]))
	}
	rows = append(rows, PassRow)

	logits, err := l.weights.logits(rows, features)
	if err != nil {
		return Step{}, err
	}
	probs, err := Softmax(logits)
	if err != nil {
		return Step{}, fmt.Errorf("failed to score %s: %w", state, err)
	}

	return Step{
		Probs:    probs,
		Chosen:   Sample(probs, rng),
		Features: features,
		Rows:     rows,
	}, nil
}

// RunEpisode deals a fresh turn, samples actions until passing and updates
// the weights with the outcome.
func (l *Learner) RunEpisode(rng *rand.Rand) (bool, error) {
	state, err := l.scenario.Deal(l.composition, rng)
	if err != nil {
		return false, err
	}
	return l.Simulate(state, rng)
}

// Simulate plays state to the end of the turn and learns from it. The state
// is consumed.
func (l *Learner) Simulate(state *game.State, rng *rand.Rand) (bool, error) {
	steps := []Step{}
	for {
		actions := state.LegalActions()
		step, err := l.Choose(state, actions, rng)
		if err != nil {
			return false, err
		}
		steps = append(steps, step)
		if step.Chosen == len(actions) {
			break
		}
		if err := state.Play(actions[step.Chosen]); err != nil {
			return false, fmt.Errorf("failed to play action %d: %w", step.Chosen, err)
		}
	}

	_, survived := state.Survive()
	reward := Loss
	if survived {
		reward = Win
	}
	if err := l.weights.Update(steps, reward, l.learningRate); err != nil {
		return false, err
	}

	l.metrics.AddEpisode(survived)
	l.metrics.AddDecisions(len(steps))
	log.Debug().Msgf("episode survived=%t after %d decisions", survived, len(steps))
	return survived, nil
}
