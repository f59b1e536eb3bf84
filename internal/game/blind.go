package game

import (
	"pokerclock/internal/clock"
	"time"

	"github.com/google/uuid"
)

// Level configures one blind: how long it lasts and its bet sizes.
type Level struct {
	Duration   time.Duration
	SmallBlind int64
	BigBlind   int64
}

// Blind is one stage of the tournament. It owns its countdown timer.
// A Blind does not know about its siblings; keeping a single blind active is
// the Game's job.
type Blind struct {
	id         string
	level      int
	smallBlind int64
	bigBlind   int64
	active     bool
	timer      *Timer
	onChange   func()
}

func newBlind(level int, cfg Level, clk clock.Clock, interval time.Duration) *Blind {
	b := &Blind{
		id:         uuid.New().String(),
		level:      level,
		smallBlind: cfg.SmallBlind,
		bigBlind:   cfg.BigBlind,
		timer:      NewTimer(cfg.Duration, clk, interval),
	}
	b.timer.onChange = b.changed
	return b
}

func (b *Blind) Activate() {
	b.active = true
	b.changed()
}

// Deactivate clears the active flag and pauses the countdown.
func (b *Blind) Deactivate() {
	b.active = false
	b.timer.Stop()
	b.changed()
}

func (b *Blind) StartTimer() { b.timer.Start() }
func (b *Blind) PauseTimer() { b.timer.Stop() }
func (b *Blind) ResetTimer() { b.timer.Reset() }

func (b *Blind) ID() string        { return b.id }
func (b *Blind) Level() int        { return b.level }
func (b *Blind) SmallBlind() int64 { return b.smallBlind }
func (b *Blind) BigBlind() int64   { return b.bigBlind }
func (b *Blind) IsActive() bool    { return b.active }
func (b *Blind) Timer() *Timer     { return b.timer }
func (b *Blind) IsRunning() bool   { return b.timer.IsRunning() }
func (b *Blind) IsComplete() bool  { return b.timer.IsComplete() }

func (b *Blind) changed() {
	if b.onChange != nil {
		b.onChange()
	}
}
