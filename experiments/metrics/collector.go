package metrics

import (
	"sync/atomic"
	"time"
)

// LearnerConfig identifies one learner of an experiment.
type LearnerConfig struct {
	ID            int
	Kind          string
	Scenario      string
	Workers       int
	Episodes      int // Per round
	Rounds        int
	LearningRate  float64
	ExploreFactor float64
}

// RoundMetric summarises one round of episodes of a learner.
type RoundMetric struct {
	Episodes  int
	Wins      int
	Decisions int
	StartTime time.Time
	Duration  time.Duration
}

// WinRate returns the fraction of episodes survived.
func (m RoundMetric) WinRate() float64 {
	if m.Episodes == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.Episodes)
}

type Collector interface {
	Start()
	AddEpisode(won bool)
	AddDecisions(n int)
	Complete() RoundMetric
}

type collector struct {
	startTime time.Time
	episodes  atomic.Int32
	wins      atomic.Int32
	decisions atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters and the clock.
func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.wins.Store(0)
	m.decisions.Store(0)
}

func (m *collector) AddEpisode(won bool) {
	m.episodes.Add(1)
	if won {
		m.wins.Add(1)
	}
}

func (m *collector) AddDecisions(n int) {
	m.decisions.Add(int64(n))
}

func (m *collector) Complete() RoundMetric {
	return RoundMetric{
		Episodes:  int(m.episodes.Load()),
		Wins:      int(m.wins.Load()),
		Decisions: int(m.decisions.Load()),
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                {}
func (m *dummyCollector) AddEpisode(won bool)   {}
func (m *dummyCollector) AddDecisions(n int)    {}
func (m *dummyCollector) Complete() RoundMetric { return RoundMetric{} }
