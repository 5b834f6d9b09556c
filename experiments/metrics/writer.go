package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RoundRecord is one row of the round records file.
type RoundRecord struct {
	Learner   int // LearnerConfig.ID
	Round     int
	TableSize int
	Estimate  float64 // Learner's own win rate estimate, if it has one
	RoundMetric
}

// Setup is the metadata of an experiment run.
type Setup struct {
	RunID     string    `json:"runId"`
	Seed      uint64    `json:"seed"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  string    `json:"duration"`
	Config    any       `json:"config"`
}

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates a directory for a new run under root.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	baseDir := filepath.Join(root, name, runID)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(seed uint64, start, end time.Time, config any) error {
	setup := Setup{
		RunID:     w.runID,
		Seed:      seed,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start).String(),
		Config:    config,
	}

	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}

	return nil
}

func (w *Writer) WriteLearnerConfigs(configs []LearnerConfig) error {
	path := filepath.Join(w.baseDir, "learner_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create learner configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "kind", "scenario", "workers", "episodes", "rounds", "learning_rate", "explore_factor"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write learner configs header: %w", err)
	}

	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Kind,
			config.Scenario,
			strconv.Itoa(config.Workers),
			strconv.Itoa(config.Episodes),
			strconv.Itoa(config.Rounds),
			strconv.FormatFloat(config.LearningRate, 'g', -1, 64),
			strconv.FormatFloat(config.ExploreFactor, 'g', -1, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write learner config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteRoundRecords(records []RoundRecord) error {
	path := filepath.Join(w.baseDir, "round_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create round records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"learner", "round", "episodes", "wins", "win_rate", "estimate", "decisions", "table_size", "start_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write round records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Learner),
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Wins),
			strconv.FormatFloat(record.WinRate(), 'f', 4, 64),
			strconv.FormatFloat(record.Estimate, 'f', 4, 64),
			strconv.Itoa(record.Decisions),
			strconv.Itoa(record.TableSize),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write round record row: %w", err)
		}
	}

	return nil
}
