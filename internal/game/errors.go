package game

import "errors"

var (
	ErrNoLevels        = errors.New("game needs at least one blind level")
	ErrInvalidDuration = errors.New("blind level duration must be positive")
	ErrInvalidInterval = errors.New("tick interval must be positive")
	ErrNoNextBlind     = errors.New("last blind is already active")
	ErrUnknownBlind    = errors.New("blind does not belong to this game")
)
