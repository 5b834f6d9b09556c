package experiments

import (
	"context"
	"fmt"
	"heart/experiments/metrics"
	"time"

	"github.com/rs/zerolog/log"
)

// RunThroughputExperiment measures how MCTS episode throughput scales with
// the number of workers sharing one table. Each worker count gets a fresh
// learner on the first configured scenario.
func RunThroughputExperiment(ctx context.Context, cfg Config, workers []int) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}
	start := time.Now()
	scenario := cfg.Scenarios[0]
	result := Result{}

	log.Info().Msgf("starting throughput experiment on %s line...", scenario.Name)

	for i, n := range workers {
		if n <= 0 {
			return result, fmt.Errorf("workers must be positive, got %d", n)
		}
		run := cfg
		run.Workers = n
		e, err := newEntrant(i+1, KindMCTS, scenario, run)
		if err != nil {
			return result, err
		}
		result.Learners = append(result.Learners, e.config)

		e.metrics.Start()
		rate, err := ScoreParallel(ctx, e.learner, cfg.Episodes, n, cfg.Seed)
		if err != nil {
			return result, fmt.Errorf("throughput with %d workers: %w", n, err)
		}
		metric := e.metrics.Complete()
		result.Rounds = append(result.Rounds, metrics.RoundRecord{
			Learner:     e.config.ID,
			Round:       1,
			TableSize:   e.size(),
			Estimate:    e.estimate(),
			RoundMetric: metric,
		})

		log.Info().Msgf("%d workers ran %d episodes in %s (%.0f episodes/s), win rate %.4f",
			n, metric.Episodes, metric.Duration, float64(metric.Episodes)/metric.Duration.Seconds(), rate)
	}

	log.Info().Msg("completed throughput experiment")

	if cfg.OutputDir == "" {
		return result, nil
	}
	run := cfg
	run.Name = cfg.Name + "_throughput"
	dir, err := store(run, start, result)
	result.Dir = dir
	return result, err
}

