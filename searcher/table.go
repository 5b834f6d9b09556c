package searcher

import (
	"fmt"
	"heart/game"
	"sync"
)

// ActionStats are the statistics of one action at one canonical state.
type ActionStats struct {
	Visits  int
	Rewards float64
}

type entry struct {
	visits  int
	actions []ActionStats
}

// Table maps canonical states to their UCB statistics. It grows with every
// new state and is never pruned. Selection takes a read lock and backup the
// write lock, so episodes may run in parallel against one table.
type Table struct {
	sync.RWMutex
	entries     map[game.Key]*entry
	rootVisits  int
	rootRewards float64
}

func NewTable() *Table {
	return &Table{entries: make(map[game.Key]*entry)}
}

// Len returns the number of canonical states seen.
func (t *Table) Len() int {
	t.RLock()
	defer t.RUnlock()

	return len(t.entries)
}

// Stats returns a copy of the statistics stored for key.
func (t *Table) Stats(key game.Key) (visits int, actions []ActionStats, ok bool) {
	t.RLock()
	defer t.RUnlock()

	e, ok := t.entries[key]
	if !ok {
		return 0, nil, false
	}
	actions = make([]ActionStats, len(e.actions))
	copy(actions, e.actions)
	return e.visits, actions, true
}

// RootEstimate returns the visit-weighted mean reward over the starting
// states of every episode backed up so far, and the number of episodes.
func (t *Table) RootEstimate() (float64, int) {
	t.RLock()
	defer t.RUnlock()

	if t.rootVisits == 0 {
		return 0, 0
	}
	return t.rootRewards / float64(t.rootVisits), t.rootVisits
}

// choose picks an action by UCB1. Untried actions come first, and ties go to
// the lowest index.
func (t *Table) choose(key game.Key, actions int, cSquared float64) (int, error) {
	t.RLock()
	defer t.RUnlock()

	e, ok := t.entries[key]
	if !ok { // Unvisited state
		return 0, nil
	}
	if len(e.actions) != actions {
		return 0, fmt.Errorf("state %d has %d actions, table has %d: %w", key.Hash(), actions, len(e.actions), ErrActionMismatch)
	}

	return newUCB(cSquared, float64(e.visits)).best(e.actions), nil
}

// backup credits reward to every decision on the path, undiscounted.
func (t *Table) backup(path []Segment, reward float64) error {
	t.Lock()
	defer t.Unlock()

	// Validate the whole path first so a bad segment leaves the table untouched
	for _, segment := range path {
		if segment.Action < 0 || segment.Action >= segment.Actions {
			return fmt.Errorf("cannot back up action %d of %d at state %d: %w", segment.Action, segment.Actions, segment.Key.Hash(), ErrActionMismatch)
		}
		if e, ok := t.entries[segment.Key]; ok && len(e.actions) != segment.Actions {
			return fmt.Errorf("state %d has %d actions, table has %d: %w", segment.Key.Hash(), segment.Actions, len(e.actions), ErrActionMismatch)
		}
	}

	for _, segment := range path {
		e, ok := t.entries[segment.Key]
		if !ok {
			e = &entry{actions: make([]ActionStats, segment.Actions)}
			t.entries[segment.Key] = e
		}
		e.visits++
		e.actions[segment.Action].Visits++
		e.actions[segment.Action].Rewards += reward
	}

	if len(path) > 0 {
		t.rootVisits++
		t.rootRewards += reward
	}
	return nil
}
