package model

import "time"

type TableEventType string

const (
	EventTableOpened  TableEventType = "table_opened"
	EventLevelStarted TableEventType = "level_started"
	EventGameReset    TableEventType = "game_reset"
	EventTableClosed  TableEventType = "table_closed"
)

// TableEvent is an entry in a table's history
type TableEvent struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	TableCode  string         `json:"tableCode" bson:"tableCode"`
	Type       TableEventType `json:"type" bson:"type"`
	Level      int            `json:"level,omitempty" bson:"level,omitempty"`
	SmallBlind int64          `json:"smallBlind,omitempty" bson:"smallBlind,omitempty"`
	BigBlind   int64          `json:"bigBlind,omitempty" bson:"bigBlind,omitempty"`
	At         time.Time      `json:"at" bson:"at"`
}
