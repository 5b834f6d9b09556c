package policy

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

var ErrDegenerateDistribution = errors.New("degenerate probability distribution")

// Softmax turns logits into probabilities. The maximum logit is subtracted
// before exponentiating so large logits cannot overflow.
func Softmax(logits []float64) ([]float64, error) {
	if len(logits) == 0 {
		return nil, fmt.Errorf("no logits: %w", ErrDegenerateDistribution)
	}
	maxLogit := math.Inf(-1)
	for _, logit := range logits {
		if math.IsNaN(logit) || math.IsInf(logit, 0) {
			return nil, fmt.Errorf("logit %v: %w", logit, ErrDegenerateDistribution)
		}
		if logit > maxLogit {
			maxLogit = logit
		}
	}

	probs := make([]float64, len(logits))
	sum := 0.0
	for i, logit := range logits {
		probs[i] = math.Exp(logit - maxLogit)
		sum += probs[i]
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, fmt.Errorf("probability mass %v: %w", sum, ErrDegenerateDistribution)
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}

// Sample draws an index with probability proportional to its weight.
func Sample(probs []float64, rng *rand.Rand) int {
	total := 0.0
	for _, p := range probs {
		total += p
	}
	sampled := rng.Float64() * total
	cumulative := 0.0
	last := 0
	for i, p := range probs {
		if p <= 0 {
			continue
		}
		last = i
		cumulative += p
		if sampled < cumulative {
			return i
		}
	}
	return last // Fallback in case of rounding errors
}
