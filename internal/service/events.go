package service

import (
	"pokerclock/internal/game"
	"pokerclock/internal/model"
)

// eventTracker turns a stream of snapshots into table history. Snapshots may
// be coalesced, so it compares states rather than counting transitions.
type eventTracker struct {
	startedLevel int
	pristine     bool
}

func newEventTracker(initial game.Snapshot) *eventTracker {
	return &eventTracker{pristine: isPristine(initial)}
}

func (e *eventTracker) observe(snap game.Snapshot) []*model.TableEvent {
	var events []*model.TableEvent

	pristine := isPristine(snap)
	if pristine && !e.pristine {
		events = append(events, &model.TableEvent{Type: model.EventGameReset, Level: 1})
		e.startedLevel = 0
	}
	e.pristine = pristine

	active, ok := snap.ActiveBlind()
	if ok && snap.Running && active.Level != e.startedLevel {
		events = append(events, &model.TableEvent{
			Type:       model.EventLevelStarted,
			Level:      active.Level,
			SmallBlind: active.SmallBlind,
			BigBlind:   active.BigBlind,
		})
		e.startedLevel = active.Level
	}
	return events
}

// isPristine reports a stopped game on its first blind with every timer full.
func isPristine(snap game.Snapshot) bool {
	if snap.Running || snap.ActiveBlindIndex != 0 {
		return false
	}
	for _, b := range snap.Blinds {
		if b.Timer.RemainingMs != b.Timer.DurationMs {
			return false
		}
	}
	return true
}
