package experiments

import (
	"context"
	"sync/atomic"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Learner plays one freshly dealt turn per call, learning from it if it can.
type Learner interface {
	RunEpisode(rng *rand.Rand) (bool, error)
}

// Score runs episodes sequentially and returns the fraction survived. It
// stops between episodes once ctx is done.
func Score(ctx context.Context, l Learner, episodes int, rng *rand.Rand) (float64, error) {
	wins := 0
	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		survived, err := l.RunEpisode(rng)
		if err != nil {
			return 0, err
		}
		if survived {
			wins++
		}
	}
	return float64(wins) / float64(episodes), nil
}

// ScoreParallel spreads episodes over workers, each with its own generator
// seeded from seed. The first error stops the remaining workers.
func ScoreParallel(ctx context.Context, l Learner, episodes, workers int, seed uint64) (float64, error) {
	task := make(chan struct{}, episodes)
	for i := 0; i < episodes; i++ {
		task <- struct{}{}
	}
	close(task)

	var wins atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		rng := rand.New(rand.NewSource(seed + uint64(w)))
		g.Go(func() error {
			for range task {
				if err := ctx.Err(); err != nil {
					return err
				}
				survived, err := l.RunEpisode(rng)
				if err != nil {
					return err
				}
				if survived {
					wins.Add(1)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return float64(wins.Load()) / float64(episodes), nil
}
