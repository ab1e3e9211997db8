package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clock_testing "k8s.io/utils/clock/testing"

	"github.com/tkorkmaz/prosed/internal/models"
)

func newTestBank(t *testing.T, steps int) (*TimerBank, *clock_testing.FakeClock) {
	t.Helper()
	fc := clock_testing.NewFakeClock(time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC))
	return NewTimerBank(steps, DefaultConfig(), fc), fc
}

func TestTimerElapsedAndRemaining(t *testing.T) {
	bank, fc := newTestBank(t, 3)

	bank.Start(0, 5)
	fc.Step(3 * time.Second)
	assert.Equal(t, 3, bank.Elapsed(0))
	assert.Equal(t, 2, bank.Remaining(0))

	// Overtime is a valid state, not an error.
	fc.Step(4 * time.Second)
	assert.Equal(t, 7, bank.Elapsed(0))
	assert.Equal(t, -2, bank.Remaining(0))
	assert.Equal(t, models.TimerOvertime, bank.StatusOf(0))
}

func TestTimerElapsedTruncates(t *testing.T) {
	bank, fc := newTestBank(t, 1)

	bank.Start(0, 10)
	fc.Step(1500 * time.Millisecond)
	assert.Equal(t, 1, bank.Elapsed(0))
	assert.Equal(t, 9, bank.Remaining(0))
}

func TestTimerStopIsIdempotent(t *testing.T) {
	bank, fc := newTestBank(t, 2)

	bank.Start(0, 10)
	fc.Step(7 * time.Second)

	require.Equal(t, 7, bank.Stop(0))
	fc.Step(5 * time.Second)
	assert.Equal(t, 7, bank.Stop(0), "second stop returns the same elapsed")
	assert.Equal(t, 7, bank.Elapsed(0), "elapsed is frozen after stop")
	assert.Equal(t, -1, bank.Active())
}

func TestTimerSingleActive(t *testing.T) {
	bank, fc := newTestBank(t, 3)

	bank.Start(0, 10)
	fc.Step(2 * time.Second)
	bank.Start(1, 20)

	assert.Equal(t, 1, bank.Active())
	assert.Equal(t, 2, bank.Elapsed(0), "previous timer stopped implicitly")

	fc.Step(3 * time.Second)
	assert.Equal(t, 2, bank.Elapsed(0))
	assert.Equal(t, 3, bank.Elapsed(1))
}

func TestTimerPauseResume(t *testing.T) {
	bank, fc := newTestBank(t, 2)

	bank.Start(0, 30)
	fc.Step(2 * time.Second)
	bank.Stop(0)

	// Time passing while paused does not count.
	fc.Step(50 * time.Second)
	assert.Equal(t, 2, bank.Elapsed(0))

	bank.Start(0, 30)
	fc.Step(3 * time.Second)
	assert.Equal(t, 5, bank.Elapsed(0))
	assert.Equal(t, 25, bank.Remaining(0))
}

func TestTimerUnknownIndex(t *testing.T) {
	bank, _ := newTestBank(t, 2)

	assert.Equal(t, 0, bank.Elapsed(99))
	assert.Equal(t, 0, bank.Remaining(99))
	assert.Equal(t, 0, bank.Stop(99))
	assert.Equal(t, models.TimerNormal, bank.StatusOf(99))
	assert.Equal(t, 0, bank.Elapsed(-1))
}

func TestTimerStatusBuckets(t *testing.T) {
	bank, fc := newTestBank(t, 1)

	bank.Start(0, 100)
	assert.Equal(t, models.TimerNormal, bank.StatusOf(0))

	fc.Step(75 * time.Second) // 25 remaining, above the 20% boundary
	assert.Equal(t, models.TimerNormal, bank.StatusOf(0))

	fc.Step(10 * time.Second) // 15 remaining
	assert.Equal(t, models.TimerWarning, bank.StatusOf(0))

	fc.Step(10 * time.Second) // 5 remaining
	assert.Equal(t, models.TimerCritical, bank.StatusOf(0))

	fc.Step(6 * time.Second) // -1 remaining
	assert.Equal(t, models.TimerOvertime, bank.StatusOf(0))
}

func TestTimerMonotonicWhileActive(t *testing.T) {
	bank, fc := newTestBank(t, 1)

	bank.Start(0, 60)
	last := 0
	for i := 0; i < 10; i++ {
		fc.Step(700 * time.Millisecond)
		elapsed := bank.Elapsed(0)
		assert.GreaterOrEqual(t, elapsed, last)
		assert.Equal(t, 60-elapsed, bank.Remaining(0))
		last = elapsed
	}
}
