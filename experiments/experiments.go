package experiments

import (
	"context"
	"fmt"
	"heart/experiments/metrics"
	"heart/game"
	"heart/heuristic"
	"heart/policy"
	"heart/searcher"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// entrant is a learner together with the accessors the driver reports on.
type entrant struct {
	config   metrics.LearnerConfig
	learner  Learner
	metrics  metrics.Collector
	estimate func() float64
	size     func() int
}

func newEntrant(id int, kind string, scenario game.Scenario, cfg Config) (*entrant, error) {
	e := &entrant{
		config: metrics.LearnerConfig{
			ID:       id,
			Kind:     kind,
			Scenario: scenario.Name,
			Workers:  cfg.Workers,
			Episodes: cfg.Episodes,
			Rounds:   cfg.Rounds,
		},
		metrics:  metrics.NewCollector(),
		estimate: func() float64 { return 0 },
		size:     func() int { return 0 },
	}

	switch kind {
	case KindHeuristic:
		e.learner = heuristic.NewBaseline(scenario, cfg.Deck, e.metrics)
	case KindMCTS:
		m := searcher.NewMCTS(scenario,
			searcher.WithComposition(cfg.Deck),
			searcher.WithExploreFactor(cfg.ExploreFactor),
			searcher.WithMetrics(e.metrics),
		)
		e.config.ExploreFactor = cfg.ExploreFactor
		e.learner = m
		e.estimate = func() float64 {
			estimate, _ := m.Table().RootEstimate()
			return estimate
		}
		e.size = m.Table().Len
	case KindPolicy:
		l, err := policy.NewLearner(scenario,
			policy.WithComposition(cfg.Deck),
			policy.WithRules(cfg.Rules),
			policy.WithLearningRate(cfg.LearningRate),
			policy.WithMetrics(e.metrics),
		)
		if err != nil {
			return nil, err
		}
		e.config.LearningRate = cfg.LearningRate
		e.learner = l
		e.size = func() int { return (game.NumCards + 1) * l.Weights().NumFeatures() }
	default:
		return nil, fmt.Errorf("unknown learner %q", kind)
	}
	return e, nil
}

// Result holds everything an experiment measured.
type Result struct {
	Learners []metrics.LearnerConfig
	Rounds   []metrics.RoundRecord
	Dir      string // Empty when nothing was written
}

// Run trains every configured learner on every scenario for the configured
// rounds, reporting the win rate after each round. Each learner keeps its
// table across rounds.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid config: %w", err)
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(cfg.Seed))
	result := Result{}

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	id := 0
	for _, scenario := range cfg.Scenarios {
		for _, kind := range cfg.Learners {
			id++
			e, err := newEntrant(id, kind, scenario, cfg)
			if err != nil {
				return result, err
			}
			result.Learners = append(result.Learners, e.config)

			log.Info().Msgf("starting %s learner on %s line...", kind, scenario.Name)

			for round := 1; round <= cfg.Rounds; round++ {
				e.metrics.Start()
				var rate float64
				if cfg.Workers > 1 {
					rate, err = ScoreParallel(ctx, e.learner, cfg.Episodes, cfg.Workers, rng.Uint64())
				} else {
					rate, err = Score(ctx, e.learner, cfg.Episodes, rng)
				}
				if err != nil {
					return result, fmt.Errorf("%s learner on %s line, round %d: %w", kind, scenario.Name, round, err)
				}
				if err := ctx.Err(); err != nil {
					return result, err
				}

				record := metrics.RoundRecord{
					Learner:     e.config.ID,
					Round:       round,
					TableSize:   e.size(),
					Estimate:    e.estimate(),
					RoundMetric: e.metrics.Complete(),
				}
				result.Rounds = append(result.Rounds, record)

				log.Info().Msgf("%s %s line round %d of %d is %.4f", kind, scenario.Name, round, cfg.Rounds, rate)
			}
			log.Info().Msgf("completed %s learner on %s line", kind, scenario.Name)
		}
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	if cfg.OutputDir == "" {
		return result, nil
	}
	dir, err := store(cfg, start, result)
	result.Dir = dir
	return result, err
}

func store(cfg Config, start time.Time, result Result) (string, error) {
	writer, err := metrics.NewWriter(cfg.OutputDir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteSetup(cfg.Seed, start, time.Now(), cfg)
	if err != nil {
		return writer.Dir(), fmt.Errorf("failed to store setup: %w", err)
	}
	log.Info().Msgf("stored setup of run %s", writer.RunID())

	err = writer.WriteLearnerConfigs(result.Learners)
	if err != nil {
		return writer.Dir(), fmt.Errorf("failed to store learner configs: %w", err)
	}
	log.Info().Msg("stored learner configs")

	err = writer.WriteRoundRecords(result.Rounds)
	if err != nil {
		return writer.Dir(), fmt.Errorf("failed to store round records: %w", err)
	}
	log.Info().Msg("stored round records")

	return writer.Dir(), nil
}
