package game

// StateHash is a compact digest of a canonical state, used in log lines.
type StateHash uint64
