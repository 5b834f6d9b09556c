package policy

import (
	"errors"
	"fmt"
	"math"
)

var ErrNonFiniteWeight = errors.New("weight update is not finite")

// Step records one decision of an episode.
type Step struct {
	Probs    []float64 // Probability of each candidate action
	Chosen   int       // Index into Probs of the sampled action
	Features []float64
	Rows     []int // Weight row of each candidate action
}

// Update applies REINFORCE with the episode's terminal reward to every step.
// The chosen action's row moves by p(1-p), every other candidate's by
// -p*p_chosen, each scaled by learningRate*reward*feature.
func (w *Weights) Update(steps []Step, reward, learningRate float64) error {
	scale := learningRate * reward
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return fmt.Errorf("learning rate %v and reward %v: %w", learningRate, reward, ErrNonFiniteWeight)
	}

	w.Lock()
	defer w.Unlock()

	for _, step := range steps {
		if len(step.Probs) != len(step.Rows) || step.Chosen < 0 || step.Chosen >= len(step.Probs) {
			return fmt.Errorf("malformed step with %d probabilities, %d rows, chosen %d", len(step.Probs), len(step.Rows), step.Chosen)
		}
		if len(step.Features) != len(w.rows[0]) {
			return fmt.Errorf("step has %d features, rows have %d", len(step.Features), len(w.rows[0]))
		}
		for _, row := range step.Rows {
			if row < 0 || row >= len(w.rows) {
				return fmt.Errorf("step references row %d of %d", row, len(w.rows))
			}
		}
	}

	for _, step := range steps {
		chosen := step.Probs[step.Chosen]
		for i, p := range step.Probs {
			var deriv float64
			if i == step.Chosen {
				deriv = p * (1 - p)
			} else {
				deriv = -(p * chosen)
			}
			weights := w.rows[step.Rows[i]]
			for j := range weights {
				weights[j] += scale * step.Features[j] * deriv
			}
		}
	}
	return nil
}
