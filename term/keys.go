package term

import (
	"unicode"

	"snake-sim/game"
	"snake-sim/game/types"

	"github.com/gdamore/tcell/v2"
)

type Action int

const (
	ActionNone Action = iota
	ActionCommand
	ActionQuit
)

// MapKey turns a key press into a session command. Terminals report presses
// rather than held keys, so every direction key yields one steer command.
func MapKey(key tcell.Key, r rune, debug bool) (game.Command, Action) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Command{}, ActionQuit
	case tcell.KeyUp:
		return game.SteerCommand(types.Axis{Y: 1}), ActionCommand
	case tcell.KeyDown:
		return game.SteerCommand(types.Axis{Y: -1}), ActionCommand
	case tcell.KeyLeft:
		return game.SteerCommand(types.Axis{X: -1}), ActionCommand
	case tcell.KeyRight:
		return game.SteerCommand(types.Axis{X: 1}), ActionCommand
	case tcell.KeyRune:
	default:
		return game.Command{}, ActionNone
	}

	switch unicode.ToLower(r) {
	case 'w':
		return game.SteerCommand(types.Axis{Y: 1}), ActionCommand
	case 's':
		return game.SteerCommand(types.Axis{Y: -1}), ActionCommand
	case 'a':
		return game.SteerCommand(types.Axis{X: -1}), ActionCommand
	case 'd':
		return game.SteerCommand(types.Axis{X: 1}), ActionCommand
	case ' ':
		return game.Command{Kind: game.CmdStart}, ActionCommand
	case 'f':
		if debug {
			return game.Command{Kind: game.CmdGrow}, ActionCommand
		}
	case '+', '=':
		return game.Command{Kind: game.CmdFaster}, ActionCommand
	case '-', '_':
		return game.Command{Kind: game.CmdSlower}, ActionCommand
	case 'q':
		return game.Command{}, ActionQuit
	}
	return game.Command{}, ActionNone
}
