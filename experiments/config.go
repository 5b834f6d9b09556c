package experiments

import (
	"errors"
	"fmt"
	"heart/game"
	"heart/policy"
	"heart/searcher"
	"os"

	"gopkg.in/yaml.v3"
)

// Learner kinds
const (
	KindHeuristic = "heuristic"
	KindMCTS      = "mcts"
	KindPolicy    = "policy"
)

// Config describes an experiment. Zero values in a YAML file keep the defaults.
type Config struct {
	Name          string           `yaml:"name" json:"name"`
	Seed          uint64           `yaml:"seed" json:"seed"`
	Episodes      int              `yaml:"episodes" json:"episodes"` // Per round
	Rounds        int              `yaml:"rounds" json:"rounds"`
	Workers       int              `yaml:"workers" json:"workers"`
	LearningRate  float64          `yaml:"learningRate" json:"learningRate"`
	ExploreFactor float64          `yaml:"exploreFactor" json:"exploreFactor"`
	Rules         game.Rules       `yaml:"rules" json:"rules"`
	Learners      []string         `yaml:"learners" json:"learners"`
	Scenarios     []game.Scenario  `yaml:"scenarios" json:"scenarios"`
	Deck          game.Composition `yaml:"deck" json:"deck"`
	OutputDir     string           `yaml:"outputDir" json:"outputDir"`
}

func DefaultConfig() Config {
	rules := game.NewStandardRules()
	return Config{
		Name:          "survival",
		Seed:          1,
		Episodes:      10000,
		Rounds:        100,
		Workers:       1,
		LearningRate:  policy.DefaultLearningRate,
		ExploreFactor: searcher.CSquared,
		Rules:         rules,
		Learners:      []string{KindHeuristic, KindMCTS, KindPolicy},
		Scenarios:     rules.Scenarios(),
		Deck:          game.DefaultComposition(),
		OutputDir:     "experiments",
	}
}

// LoadConfig reads a YAML file over the defaults. Without a scenarios list
// the built-in openings follow the configured rules.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	cfg.Scenarios = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config YAML: %w", err)
	}
	if len(cfg.Scenarios) == 0 {
		cfg.Scenarios = cfg.Rules.Scenarios()
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Episodes <= 0 {
		errs = append(errs, fmt.Errorf("episodes must be positive, got %d", c.Episodes))
	}
	if c.Rounds <= 0 {
		errs = append(errs, fmt.Errorf("rounds must be positive, got %d", c.Rounds))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.LearningRate <= 0 {
		errs = append(errs, fmt.Errorf("learning rate must be positive, got %v", c.LearningRate))
	}
	if c.ExploreFactor <= 0 {
		errs = append(errs, fmt.Errorf("explore factor must be positive, got %v", c.ExploreFactor))
	}
	if c.Rules.StartingEnergy <= 0 {
		errs = append(errs, fmt.Errorf("starting energy must be positive, got %d", c.Rules.StartingEnergy))
	}
	if len(c.Learners) == 0 {
		errs = append(errs, errors.New("no learners configured"))
	}
	for _, kind := range c.Learners {
		switch kind {
		case KindHeuristic, KindMCTS, KindPolicy:
		default:
			errs = append(errs, fmt.Errorf("unknown learner %q", kind))
		}
	}
	if len(c.Scenarios) == 0 {
		errs = append(errs, errors.New("no scenarios configured"))
	}
	if err := c.Deck.Validate(); err != nil {
		errs = append(errs, err)
	}
	for _, s := range c.Scenarios {
		if err := s.Validate(c.Deck); err != nil {
			errs = append(errs, err)
		}
		if s.Energy > c.Rules.StartingEnergy {
			errs = append(errs, fmt.Errorf("scenario %s opens with %d energy, above the starting energy %d", s.Name, s.Energy, c.Rules.StartingEnergy))
		}
	}
	return errors.Join(errs...)
}
