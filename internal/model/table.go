package model

import "time"

type TableStatus string

const (
	TableLive   TableStatus = "live"
	TableClosed TableStatus = "closed"
)

// Table is a live game opened by a host from a blind structure
type Table struct {
	Code        string      `json:"code"`
	Title       string      `json:"title"`
	StructureID string      `json:"structureId"`
	HostID      string      `json:"hostId"`
	Status      TableStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// CommandAction names a clock command
type CommandAction string

const (
	ActionStart    CommandAction = "start"
	ActionPause    CommandAction = "pause"
	ActionReset    CommandAction = "reset"
	ActionNext     CommandAction = "next"
	ActionActivate CommandAction = "activate" // select a level, resetting it only if it ran out
	ActionJump     CommandAction = "jump"     // select a level and reset it and every later level
	ActionEnd      CommandAction = "end"
)

// Command is a host instruction for a table's clock. Level is 1-based and
// only used by activate and jump.
type Command struct {
	Action CommandAction `json:"action"`
	Level  int           `json:"level,omitempty"`
}
