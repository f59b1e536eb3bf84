package model

import (
	"math"
	"pokerclock/internal/game"
	"time"
)

// MaxLevelMinutes is the longest level a structure may hold (one day)
const MaxLevelMinutes = 24 * 60

// BlindLevel is one level of a blind structure
type BlindLevel struct {
	Minutes    float64 `json:"minutes" bson:"minutes" yaml:"minutes"`
	SmallBlind int64   `json:"smallBlind" bson:"smallBlind" yaml:"small_blind"`
	BigBlind   int64   `json:"bigBlind" bson:"bigBlind" yaml:"big_blind"`
}

// Duration converts the level length to a time.Duration, rounded to the
// nearest millisecond. Lengths are capped at MaxLevelMinutes; NaN and
// non-positive lengths give 0.
func (l BlindLevel) Duration() time.Duration {
	if math.IsNaN(l.Minutes) || l.Minutes <= 0 {
		return 0
	}
	minutes := math.Min(l.Minutes, MaxLevelMinutes)
	ms := math.Round(minutes * float64(time.Minute/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}

// BlindStructure is a persistent list of blind levels created by a host
type BlindStructure struct {
	ID        string       `json:"id" bson:"_id,omitempty" yaml:"-"`
	HostID    string       `json:"hostId" bson:"hostId" yaml:"-"`
	Title     string       `json:"title" bson:"title" yaml:"title"`
	Levels    []BlindLevel `json:"levels" bson:"levels" yaml:"levels"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt" yaml:"-"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt" yaml:"-"`
}

// GameLevels converts the structure into game levels
func (s *BlindStructure) GameLevels() []game.Level {
	levels := make([]game.Level, len(s.Levels))
	for i, l := range s.Levels {
		levels[i] = game.Level{
			Duration:   l.Duration(),
			SmallBlind: l.SmallBlind,
			BigBlind:   l.BigBlind,
		}
	}
	return levels
}
