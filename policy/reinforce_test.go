package policy

import (
	"heart/game"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func probabilityOf(t *testing.T, w *Weights, step Step, i int) float64 {
	logits, err := w.logits(step.Rows, step.Features)
	require.NoError(t, err)
	probs, err := Softmax(logits)
	require.NoError(t, err)
	return probs[i]
}

func TestUpdate(t *testing.T) {
	features := []float64{0.5, 1, 0, 1}
	step := Step{
		Probs:    []float64{0.5, 0.5},
		Chosen:   0,
		Features: features,
		Rows:     []int{int(game.Defend), PassRow},
	}

	t.Run("positive reward raises the chosen action", func(t *testing.T) {
		w := NewWeights(len(features))
		before := probabilityOf(t, w, step, step.Chosen)

		require.NoError(t, w.Update([]Step{step}, Win, 0.1))

		require.Greater(t, probabilityOf(t, w, step, step.Chosen), before)
	})

	t.Run("negative reward lowers the chosen action", func(t *testing.T) {
		w := NewWeights(len(features))
		before := probabilityOf(t, w, step, step.Chosen)

		require.NoError(t, w.Update([]Step{step}, Loss, 0.1))

		require.Less(t, probabilityOf(t, w, step, step.Chosen), before)
	})

	t.Run("gradient per row", func(t *testing.T) {
		w := NewWeights(len(features))
		three := Step{
			Probs:    []float64{0.2, 0.3, 0.5},
			Chosen:   1,
			Features: features,
			Rows:     []int{int(game.Defend), int(game.LegSweep), PassRow},
		}

		require.NoError(t, w.Update([]Step{three}, Win, 0.01))

		for j, f := range features {
			require.InDelta(t, 0.01*f*-(0.2*0.3), w.Row(int(game.Defend))[j], 1e-12)
			require.InDelta(t, 0.01*f*(0.3*0.7), w.Row(int(game.LegSweep))[j], 1e-12)
			require.InDelta(t, 0.01*f*-(0.5*0.3), w.Row(PassRow)[j], 1e-12)
		}
		require.Equal(t, make([]float64, len(features)), w.Row(int(game.Void)), "Untouched rows should not move")
	})

	t.Run("shared rows accumulate", func(t *testing.T) {
		w := NewWeights(len(features))
		duplicate := Step{
			Probs:    []float64{0.25, 0.25, 0.5},
			Chosen:   0,
			Features: features,
			Rows:     []int{int(game.Defend), int(game.Defend), PassRow},
		}

		require.NoError(t, w.Update([]Step{duplicate}, Win, 1))

		want := 0.25*0.75 - 0.25*0.25
		require.InDelta(t, want*features[1], w.Row(int(game.Defend))[1], 1e-12)
	})

	t.Run("rejects malformed steps", func(t *testing.T) {
		w := NewWeights(len(features))
		bad := step
		bad.Chosen = 2

		require.Error(t, w.Update([]Step{step, bad}, Win, 0.1))
		require.Equal(t, make([]float64, len(features)), w.Row(int(game.Defend)), "Nothing should be applied")
	})

	t.Run("rejects non-finite scale", func(t *testing.T) {
		w := NewWeights(len(features))

		require.ErrorIs(t, w.Update([]Step{step}, math.NaN(), 0.1), ErrNonFiniteWeight)
	})
}

func TestChooseThenUpdate(t *testing.T) {
	l, err := NewLearner(game.Dash(), WithLearningRate(0.05))
	require.NoError(t, err)
	s := &game.State{
		Life: 51, Energy: 3, IncomingDamage: 46,
		Hand: []game.Card{game.Defend, game.LegSweep},
	}
	actions := s.LegalActions()
	rng := rand.New(rand.NewSource(8))

	step, err := l.Choose(s, actions, rng)
	require.NoError(t, err)
	require.Equal(t, []int{int(game.Defend), int(game.LegSweep), PassRow}, step.Rows)
	require.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, step.Probs, 1e-12)

	require.NoError(t, l.Weights().Update([]Step{step}, Win, 0.05))

	after, err := l.Choose(s, actions, rng)
	require.NoError(t, err)
	require.Greater(t, after.Probs[step.Chosen], step.Probs[step.Chosen])
}
