package service

import (
	"pokerclock/internal/game"
	"pokerclock/internal/model"
)

// ApplyCommand runs cmd against g. It must be called on the game's thread.
func ApplyCommand(g *game.Game, cmd model.Command) error {
	switch cmd.Action {
	case model.ActionStart:
		g.StartGame()
	case model.ActionPause:
		g.PauseGame()
	case model.ActionReset:
		g.ResetGame()
	case model.ActionEnd:
		g.EndGame()
	case model.ActionNext:
		return g.ActivateNextBlind()
	case model.ActionActivate:
		return g.ActivateBlind(g.BlindAt(cmd.Level - 1))
	case model.ActionJump:
		return g.ActivateAndResetBlind(g.BlindAt(cmd.Level - 1))
	default:
		return ErrUnknownAction
	}
	return nil
}
