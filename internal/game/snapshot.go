package game

import "time"

// TimerSnapshot is a read-only copy of a timer's state.
type TimerSnapshot struct {
	ID                 string  `json:"id"`
	DurationMs         int64   `json:"durationMs"`
	RemainingMs        int64   `json:"remainingMs"`
	Hours              int     `json:"hours"`
	Minutes            int     `json:"minutes"`
	Seconds            int     `json:"seconds"`
	Milliseconds       int     `json:"milliseconds"`
	PercentageComplete float64 `json:"percentageComplete"`
	Running            bool    `json:"running"`
	Complete           bool    `json:"complete"`
}

// BlindSnapshot is a read-only copy of a blind's state.
type BlindSnapshot struct {
	ID         string        `json:"id"`
	Level      int           `json:"level"`
	SmallBlind int64         `json:"smallBlind"`
	BigBlind   int64         `json:"bigBlind"`
	Active     bool          `json:"active"`
	Running    bool          `json:"running"`
	Complete   bool          `json:"complete"`
	Timer      TimerSnapshot `json:"timer"`
}

// Snapshot is a read-only copy of a whole game, safe to hand to other
// goroutines.
type Snapshot struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Blinds           []BlindSnapshot `json:"blinds"`
	ActiveBlindIndex int             `json:"activeBlindIndex"`
	Running          bool            `json:"running"`
	Complete         bool            `json:"complete"`
	LastBlindActive  bool            `json:"lastBlindActive"`
	Version          uint64          `json:"version"`
	TakenAt          time.Time       `json:"takenAt"`
}

// ActiveBlind returns the active blind of the snapshot.
func (s Snapshot) ActiveBlind() (BlindSnapshot, bool) {
	if s.ActiveBlindIndex < 0 || s.ActiveBlindIndex >= len(s.Blinds) {
		return BlindSnapshot{}, false
	}
	return s.Blinds[s.ActiveBlindIndex], true
}

func (t *Timer) Snapshot() TimerSnapshot {
	return TimerSnapshot{
		ID:                 t.id,
		DurationMs:         t.total.Milliseconds(),
		RemainingMs:        t.remaining.Milliseconds(),
		Hours:              t.HoursRemaining(),
		Minutes:            t.MinutesRemaining(),
		Seconds:            t.SecondsRemaining(),
		Milliseconds:       t.MillisecondsRemaining(),
		PercentageComplete: t.PercentageComplete(),
		Running:            t.running,
		Complete:           t.IsComplete(),
	}
}

func (b *Blind) Snapshot() BlindSnapshot {
	return BlindSnapshot{
		ID:         b.id,
		Level:      b.level,
		SmallBlind: b.smallBlind,
		BigBlind:   b.bigBlind,
		Active:     b.active,
		Running:    b.IsRunning(),
		Complete:   b.IsComplete(),
		Timer:      b.timer.Snapshot(),
	}
}

func (g *Game) Snapshot() Snapshot {
	blinds := make([]BlindSnapshot, len(g.blinds))
	for i, b := range g.blinds {
		blinds[i] = b.Snapshot()
	}
	return Snapshot{
		ID:               g.id,
		Title:            g.title,
		Blinds:           blinds,
		ActiveBlindIndex: g.ActiveBlindIndex(),
		Running:          g.IsRunning(),
		Complete:         g.IsComplete(),
		LastBlindActive:  g.IsLastBlindActive(),
		Version:          g.version,
		TakenAt:          g.clock.Now(),
	}
}
