package searcher

import "math"

// ucb scores the actions of one visited state with UCB1.
type ucb struct {
	numerator float64
}

func newUCB(cSquared float64, N float64) *ucb {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &ucb{numerator: cSquared * math.Log(N)}
}

func (u ucb) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// best returns the first untried action, or else the first action with the
// highest score.
func (u ucb) best(actions []ActionStats) int {
	for i, a := range actions {
		if a.Visits == 0 {
			return i
		}
	}

	best := 0
	bestScore := u.evaluate(actions[0].Rewards, float64(actions[0].Visits))
	for i, a := range actions[1:] {
		if score := u.evaluate(a.Rewards, float64(a.Visits)); score > bestScore {
			bestScore = score
			best = i + 1
		}
	}
	return best
}
