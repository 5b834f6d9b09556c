package policy

import (
	"fmt"
	"heart/game"
	"sync"
)

// PassRow is the weight row used for ending the turn.
const PassRow = game.NumCards

// Weights is the linear policy: one row per card type plus one for pass.
// Scoring takes a read lock and updates the write lock.
type Weights struct {
	sync.RWMutex
	rows [][]float64
}

// NewWeights returns a zeroed table, which scores every action equally.
func NewWeights(numFeatures int) *Weights {
	rows := make([][]float64, game.NumCards+1)
	for i := range rows {
		rows[i] = make([]float64, numFeatures)
	}
	return &Weights{rows: rows}
}

// NumFeatures returns the row width.
func (w *Weights) NumFeatures() int {
	return len(w.rows[0])
}

// Row returns a copy of one row.
func (w *Weights) Row(row int) []float64 {
	w.RLock()
	defer w.RUnlock()

	out := make([]float64, len(w.rows[row]))
	copy(out, w.rows[row])
	return out
}

// SetRow replaces one row.
func (w *Weights) SetRow(row int, values []float64) error {
	w.Lock()
	defer w.Unlock()

	if len(values) != len(w.rows[row]) {
		return fmt.Errorf("row has %d weights, got %d", len(w.rows[row]), len(values))
	}
	copy(w.rows[row], values)
	return nil
}

// logits scores each row against the features.
func (w *Weights) logits(rows []int, features []float64) ([]float64, error) {
	w.RLock()
	defer w.RUnlock()

	logits := make([]float64, len(rows))
	for i, row := range rows {
		weights := w.rows[row]
		if len(weights) != len(features) {
			return nil, fmt.Errorf("row %d has %d weights for %d features", row, len(weights), len(features))
		}
		acc := 0.0
		for j := range weights {
			acc += features[j] * weights[j]
		}
		logits[i] = acc
	}
	return logits, nil
}
