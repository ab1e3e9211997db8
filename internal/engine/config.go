package engine

import "time"

// Config holds the engine tuning knobs. Thresholds are fractions of
// remaining/limit; the tick interval drives the timer broadcast.
type Config struct {
	TickInterval      time.Duration
	WarningThreshold  float64
	CriticalThreshold float64
	HistoryLimit      int
	PersistEvery      int // seconds between mid-step snapshot flushes
}

// DefaultConfig returns the stock configuration: 1s ticks, warning below
// 20% remaining, critical below 10%, 256 history entries, flush every 10s.
func DefaultConfig() Config {
	return Config{
		TickInterval:      time.Second,
		WarningThreshold:  0.20,
		CriticalThreshold: 0.10,
		HistoryLimit:      256,
		PersistEvery:      10,
	}
}
