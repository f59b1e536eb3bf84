// Package game implements the blind clock: a Game walks through an ordered
// list of Blinds, each counting down on its own Timer, and advances to the
// next blind whenever the active one runs out.
//
// Nothing in this package is safe for concurrent use. Commands and the tick
// callbacks of the game's clock must run on one logical thread; with a
// clock.Loop that means issuing every command through Loop.Do.
package game

import (
	"pokerclock/internal/clock"
	"time"

	"github.com/google/uuid"
)

type Game struct {
	id       string
	title    string
	blinds   []*Blind
	clock    clock.Clock
	interval time.Duration

	// depth counts nested commands; progression runs when the outermost one
	// returns.
	depth    int
	dirty    bool
	settling bool

	version   uint64
	nextSubID int
	listeners []listener
}

type listener struct {
	id int
	fn func(Snapshot)
}

type Option func(*Game)

// WithTickInterval sets how often running timers count down.
func WithTickInterval(d time.Duration) Option {
	return func(g *Game) {
		g.interval = d
	}
}

// WithID overrides the generated game id.
func WithID(id string) Option {
	return func(g *Game) {
		g.id = id
	}
}

// New builds a game from levels and activates the first blind. Ticks are
// scheduled on clk.
func New(clk clock.Clock, title string, levels []Level, opts ...Option) (*Game, error) {
	g := &Game{
		id:       uuid.New().String(),
		title:    title,
		clock:    clk,
		interval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(g)
	}

	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	if g.interval <= 0 {
		return nil, ErrInvalidInterval
	}

	g.blinds = make([]*Blind, len(levels))
	for i, lvl := range levels {
		if lvl.Duration <= 0 {
			return nil, ErrInvalidDuration
		}
		b := newBlind(i+1, lvl, clk, g.interval)
		b.onChange = g.changed
		g.blinds[i] = b
	}

	g.action(func() {
		if g.ActiveBlind() == nil {
			g.blinds[0].Activate()
		}
	})
	return g, nil
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Title() string { return g.title }

// Blinds returns the blinds in play order.
func (g *Game) Blinds() []*Blind {
	out := make([]*Blind, len(g.blinds))
	copy(out, g.blinds)
	return out
}

// BlindAt returns the blind at index i, or nil when out of range.
func (g *Game) BlindAt(i int) *Blind {
	if i < 0 || i >= len(g.blinds) {
		return nil
	}
	return g.blinds[i]
}

// ActiveBlindIndex returns the index of the active blind, or -1.
func (g *Game) ActiveBlindIndex() int {
	for i, b := range g.blinds {
		if b.active {
			return i
		}
	}
	return -1
}

// ActiveBlind returns the active blind, or nil.
func (g *Game) ActiveBlind() *Blind {
	return g.BlindAt(g.ActiveBlindIndex())
}

func (g *Game) IsRunning() bool {
	active := g.ActiveBlind()
	return active != nil && active.IsRunning()
}

func (g *Game) IsLastBlindActive() bool {
	return g.ActiveBlindIndex() == len(g.blinds)-1
}

// IsComplete reports whether the last blind is active and has run out.
func (g *Game) IsComplete() bool {
	return g.IsLastBlindActive() && g.ActiveBlind().IsComplete()
}

// StartGame starts the active blind's countdown.
func (g *Game) StartGame() {
	g.action(g.start)
}

// PauseGame pauses the active blind's countdown.
func (g *Game) PauseGame() {
	g.action(g.pause)
}

// ResetGame restores every timer and goes back to the first blind.
func (g *Game) ResetGame() {
	g.action(g.reset)
}

// EndGame goes back to the first blind without touching any timer.
func (g *Game) EndGame() {
	g.action(func() {
		g.activate(g.blinds[0])
	})
}

// ActivateBlind makes target the only active blind. A target that has
// already run out is reset first.
func (g *Game) ActivateBlind(target *Blind) error {
	if g.indexOf(target) < 0 {
		return ErrUnknownBlind
	}
	g.action(func() {
		g.activate(target)
	})
	return nil
}

// ActivateAndResetBlind pauses the game, activates target and resets every
// blind from target onwards. Blinds before target keep their state.
func (g *Game) ActivateAndResetBlind(target *Blind) error {
	if g.indexOf(target) < 0 {
		return ErrUnknownBlind
	}
	g.action(func() {
		g.pause()
		g.activate(target)
		for _, b := range g.blinds[g.ActiveBlindIndex():] {
			b.ResetTimer()
		}
	})
	return nil
}

// ActivateNextBlind activates the blind after the active one. On the last
// blind it returns ErrNoNextBlind and changes nothing.
func (g *Game) ActivateNextBlind() error {
	var err error
	g.action(func() {
		err = g.activateNext()
	})
	return err
}

func (g *Game) start() {
	if active := g.ActiveBlind(); active != nil {
		active.StartTimer()
	}
}

func (g *Game) pause() {
	if active := g.ActiveBlind(); active != nil {
		active.PauseTimer()
	}
}

func (g *Game) reset() {
	for _, b := range g.blinds {
		b.ResetTimer()
	}
	g.activate(g.blinds[0])
}

func (g *Game) activate(target *Blind) {
	for _, b := range g.blinds {
		b.Deactivate()
	}
	if target.IsComplete() {
		target.ResetTimer()
	}
	target.Activate()
}

func (g *Game) activateNext() error {
	next := g.BlindAt(g.ActiveBlindIndex() + 1)
	if next == nil {
		return ErrNoNextBlind
	}
	g.activate(next)
	return nil
}

func (g *Game) indexOf(target *Blind) int {
	for i, b := range g.blinds {
		if b == target {
			return i
		}
	}
	return -1
}
