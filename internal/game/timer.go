package game

import (
	"math"
	"pokerclock/internal/clock"
	"time"

	"github.com/google/uuid"
)

// DefaultTickInterval is how often a running timer counts down.
const DefaultTickInterval = 10 * time.Millisecond

// Timer is a countdown that decrements its remaining duration by a fixed
// interval on every tick while it is running.
type Timer struct {
	id        string
	total     time.Duration
	remaining time.Duration
	interval  time.Duration
	running   bool

	clock    clock.Clock
	ticker   clock.Ticker
	onChange func()
}

// NewTimer creates a stopped timer of the given duration. A non-positive
// interval falls back to DefaultTickInterval.
func NewTimer(total time.Duration, clk clock.Clock, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Timer{
		id:        uuid.New().String(),
		total:     total,
		remaining: total,
		interval:  interval,
		clock:     clk,
	}
}

// Start begins counting down. Starting a running timer does nothing.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.ticker = t.clock.Every(t.interval, t.tick)
	t.changed()
}

// Stop pauses the countdown and cancels its tick task.
func (t *Timer) Stop() {
	t.halt()
	t.changed()
}

// Reset stops the timer and restores the full duration.
func (t *Timer) Reset() {
	t.halt()
	t.remaining = t.total
	t.changed()
}

func (t *Timer) tick() {
	t.remaining -= t.interval
	if t.remaining <= 0 {
		t.remaining = 0
		t.halt()
	}
	t.changed()
}

func (t *Timer) halt() {
	t.running = false
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

func (t *Timer) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}

func (t *Timer) ID() string               { return t.id }
func (t *Timer) Duration() time.Duration  { return t.total }
func (t *Timer) Remaining() time.Duration { return t.remaining }
func (t *Timer) Interval() time.Duration  { return t.interval }
func (t *Timer) IsRunning() bool          { return t.running }
func (t *Timer) IsComplete() bool         { return t.remaining <= 0 }

// PercentageComplete is the elapsed share of the duration, rounded to two
// decimals.
func (t *Timer) PercentageComplete() float64 {
	if t.total <= 0 {
		return 100
	}
	left := float64(t.remaining) / float64(t.total) * 100
	return 100 - math.Round(left*100)/100
}

// The remaining duration read as a wall-clock time past the Unix epoch, so
// 90 minutes left is 01:30:00.000.
func (t *Timer) asTime() time.Time {
	return time.UnixMilli(t.remaining.Milliseconds()).UTC()
}

func (t *Timer) HoursRemaining() int        { return t.asTime().Hour() }
func (t *Timer) MinutesRemaining() int      { return t.asTime().Minute() }
func (t *Timer) SecondsRemaining() int      { return t.asTime().Second() }
func (t *Timer) MillisecondsRemaining() int { return t.asTime().Nanosecond() / int(time.Millisecond) }
