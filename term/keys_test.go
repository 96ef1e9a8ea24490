package term

import (
	"testing"

	"snake-sim/game"
	"snake-sim/game/types"

	"github.com/gdamore/tcell/v2"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name   string
		key    tcell.Key
		r      rune
		debug  bool
		want   game.Command
		action Action
	}{
		{"arrow up", tcell.KeyUp, 0, false, game.SteerCommand(types.Axis{Y: 1}), ActionCommand},
		{"arrow down", tcell.KeyDown, 0, false, game.SteerCommand(types.Axis{Y: -1}), ActionCommand},
		{"arrow left", tcell.KeyLeft, 0, false, game.SteerCommand(types.Axis{X: -1}), ActionCommand},
		{"arrow right", tcell.KeyRight, 0, false, game.SteerCommand(types.Axis{X: 1}), ActionCommand},
		{"w", tcell.KeyRune, 'w', false, game.SteerCommand(types.Axis{Y: 1}), ActionCommand},
		{"upper D", tcell.KeyRune, 'D', false, game.SteerCommand(types.Axis{X: 1}), ActionCommand},
		{"space", tcell.KeyRune, ' ', false, game.Command{Kind: game.CmdStart}, ActionCommand},
		{"grow in debug", tcell.KeyRune, 'f', true, game.Command{Kind: game.CmdGrow}, ActionCommand},
		{"grow without debug", tcell.KeyRune, 'f', false, game.Command{}, ActionNone},
		{"plus", tcell.KeyRune, '+', false, game.Command{Kind: game.CmdFaster}, ActionCommand},
		{"equals", tcell.KeyRune, '=', false, game.Command{Kind: game.CmdFaster}, ActionCommand},
		{"minus", tcell.KeyRune, '-', false, game.Command{Kind: game.CmdSlower}, ActionCommand},
		{"q", tcell.KeyRune, 'q', false, game.Command{}, ActionQuit},
		{"escape", tcell.KeyEscape, 0, false, game.Command{}, ActionQuit},
		{"ctrl-c", tcell.KeyCtrlC, 0, false, game.Command{}, ActionQuit},
		{"unbound rune", tcell.KeyRune, 'x', false, game.Command{}, ActionNone},
		{"unbound key", tcell.KeyTab, 0, false, game.Command{}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, action := MapKey(tt.key, tt.r, tt.debug)
			if action != tt.action {
				t.Fatalf("action = %v, want %v", action, tt.action)
			}
			if cmd != tt.want {
				t.Fatalf("command = %+v, want %+v", cmd, tt.want)
			}
		})
	}
}
