package main

import (
	"context"
	"flag"
	"fmt"
	"heart/experiments"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath string
	seed       uint64
	episodes   int
	rounds     int
	workers    int
	outputDir  string
	learners   string
	throughput string
	verbose    bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "YAML experiment config (defaults are used when empty)")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 = keep config seed)")
	flag.IntVar(&episodes, "episodes", 0, "Episodes per round (0 = keep config value)")
	flag.IntVar(&rounds, "rounds", 0, "Rounds per learner (0 = keep config value)")
	flag.IntVar(&workers, "workers", 0, "Worker goroutines per round (0 = keep config value)")
	flag.StringVar(&outputDir, "output-dir", "", "Directory for experiment records (default: config value)")
	flag.StringVar(&learners, "learners", "", "Comma separated learners: heuristic, mcts, policy")
	flag.StringVar(&throughput, "throughput", "", "Comma separated worker counts; runs the throughput experiment instead")
	flag.BoolVar(&verbose, "verbose", false, "Log every episode")
}

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result experiments.Result
	if throughput != "" {
		counts, err := parseInts(throughput)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -throughput")
		}
		result, err = experiments.RunThroughputExperiment(ctx, cfg, counts)
		if err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
	} else {
		result, err = experiments.Run(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
	}

	if result.Dir != "" {
		log.Info().Msgf("records written to %s", result.Dir)
	}
}

func loadConfig() (experiments.Config, error) {
	cfg := experiments.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = experiments.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
	}

	if seed != 0 {
		cfg.Seed = seed
	}
	if episodes > 0 {
		cfg.Episodes = episodes
	}
	if rounds > 0 {
		cfg.Rounds = rounds
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if learners != "" {
		cfg.Learners = strings.Split(learners, ",")
	}
	return cfg, cfg.Validate()
}

func parseInts(list string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", field, err)
		}
		out = append(out, n)
	}
	return out, nil
}
