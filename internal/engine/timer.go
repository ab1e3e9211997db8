package engine

import (
	"time"

	"github.com/rs/zerolog/log"
	"k8s.io/utils/clock"

	"github.com/tkorkmaz/prosed/internal/models"
)

// stepTimer tracks accumulated time for one step index.
type stepTimer struct {
	started   bool
	paused    bool
	resumedAt time.Time
	elapsed   int // seconds accumulated across pause/resume cycles
	limit     int
}

// TimerBank keeps an independent timer per step index in a fixed-size
// arena. Indices are stable once a procedure is loaded, and at most one
// timer runs at a time: the active index is a single nullable field, so
// "one step being worked on" is structural, not a convention.
type TimerBank struct {
	clk    clock.PassiveClock
	cfg    Config
	timers []stepTimer
	active int // -1 when no timer is running
}

// NewTimerBank creates a bank sized to the step count.
func NewTimerBank(steps int, cfg Config, clk clock.PassiveClock) *TimerBank {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &TimerBank{
		clk:    clk,
		cfg:    cfg,
		timers: make([]stepTimer, steps),
		active: -1,
	}
}

// Start begins or resumes the timer for index and makes it the active
// one. Any previously active timer is stopped first.
func (b *TimerBank) Start(index, limitSeconds int) {
	if !b.valid(index) {
		return
	}
	if b.active != -1 && b.active != index {
		b.Stop(b.active)
	}
	t := &b.timers[index]
	if !t.started {
		t.started = true
		t.elapsed = 0
	}
	t.resumedAt = b.clk.Now()
	t.paused = false
	t.limit = limitSeconds
	b.active = index

	log.Debug().Int("step", index).Int("limit", limitSeconds).Msg("timer started")
}

// Stop freezes accumulation for index and returns the total elapsed
// seconds. Stopping an already stopped timer is safe and returns the
// same value.
func (b *TimerBank) Stop(index int) int {
	if !b.valid(index) || !b.timers[index].started {
		return 0
	}
	t := &b.timers[index]
	if !t.paused {
		t.elapsed += int(b.clk.Now().Sub(t.resumedAt).Seconds())
		t.paused = true
	}
	if b.active == index {
		b.active = -1
	}
	log.Debug().Int("step", index).Int("elapsed", t.elapsed).Msg("timer stopped")
	return t.elapsed
}

// Elapsed returns accumulated seconds for index, including the running
// span when unpaused. Unknown indices report 0.
func (b *TimerBank) Elapsed(index int) int {
	if !b.valid(index) || !b.timers[index].started {
		return 0
	}
	t := &b.timers[index]
	if t.paused {
		return t.elapsed
	}
	// Truncate at the point of measurement so repeated reads within the
	// same second agree.
	return t.elapsed + int(b.clk.Now().Sub(t.resumedAt).Seconds())
}

// Remaining returns limit minus elapsed for index. Negative values mean
// overtime and are meaningful, not an error.
func (b *TimerBank) Remaining(index int) int {
	if !b.valid(index) || !b.timers[index].started {
		return 0
	}
	return b.timers[index].limit - b.Elapsed(index)
}

// StatusOf buckets the remaining time for index against the configured
// thresholds.
func (b *TimerBank) StatusOf(index int) models.TimerState {
	if !b.valid(index) || !b.timers[index].started {
		return models.TimerNormal
	}
	t := &b.timers[index]
	remaining := b.Remaining(index)
	if remaining < 0 {
		return models.TimerOvertime
	}
	frac := 1.0
	if t.limit > 0 {
		frac = float64(remaining) / float64(t.limit)
	}
	switch {
	case frac > b.cfg.WarningThreshold:
		return models.TimerNormal
	case frac > b.cfg.CriticalThreshold:
		return models.TimerWarning
	default:
		return models.TimerCritical
	}
}

// Active returns the running timer's index, or -1.
func (b *TimerBank) Active() int {
	return b.active
}

func (b *TimerBank) valid(index int) bool {
	return index >= 0 && index < len(b.timers)
}
