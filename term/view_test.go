package term

import (
	"strings"
	"testing"

	"snake-sim/game"
	"snake-sim/game/manager"
	"snake-sim/game/types"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.Screen, y int) string {
	var b strings.Builder
	w, _ := screen.Size()
	for x := 0; x < w; x++ {
		r := runeAt(screen, x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func testFrame(phase manager.Phase) game.Snapshot {
	return game.Snapshot{
		Phase:     phase,
		Cols:      4,
		Rows:      3,
		Body:      []types.Point{{X: 0, Y: 0}, {X: 0, Y: -1}},
		Food:      []types.Point{{X: 1, Y: 1}},
		ScoreText: "SCORE: 250",
		Length:    2,
		Speed:     1.25,
	}
}

func TestDrawBeforeFirstFrame(t *testing.T) {
	screen := newScreen(t)
	v := NewView(screen, false)
	v.Draw(0)

	if got := rowText(screen, 0); !strings.HasPrefix(got, "waiting for session") {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestDrawPlacesCells(t *testing.T) {
	screen := newScreen(t)
	v := NewView(screen, false)
	v.OnFrame(testFrame(manager.Playing))
	v.Draw(0)

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		// (0,0) is column 2, row 1 counted from the bottom of a 3-row room
		{"head", 5, 3, runeHead},
		{"head right half", 6, 3, runeHead},
		{"body", 5, 4, runeBody},
		{"food", 7, 2, runeFood},
		{"top left corner", 0, 1, tcell.RuneULCorner},
		{"bottom right corner", 9, 5, tcell.RuneLRCorner},
		{"left wall", 0, 3, tcell.RuneVLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runeAt(screen, tt.x, tt.y); got != tt.want {
				t.Fatalf("rune at (%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if got := rowText(screen, 0); !strings.HasPrefix(got, "SCORE: 250  HIGH: 0  LENGTH: 2  SPEED: x1.25") {
		t.Fatalf("score line = %q", got)
	}
}

func TestDrawDebugGrid(t *testing.T) {
	screen := newScreen(t)
	v := NewView(screen, true)
	v.OnFrame(testFrame(manager.Playing))
	v.Draw(0)

	if got := runeAt(screen, 1, 2); got != runeEmpty {
		t.Fatalf("empty cell = %q, want %q", got, runeEmpty)
	}
}

func TestDrawWaitingBanner(t *testing.T) {
	screen := newScreen(t)
	v := NewView(screen, false)
	frame := testFrame(manager.Waiting)
	frame.Cols = 16
	frame.Rows = 9
	v.OnFrame(frame)
	v.Draw(0)

	if got := rowText(screen, boardTop+frame.Rows/2); !strings.Contains(got, "PRESS SPACE TO START") {
		t.Fatalf("banner row = %q", got)
	}
}

func TestGameOverBannerSlidesIntoPlace(t *testing.T) {
	screen := newScreen(t)
	v := NewView(screen, false)
	frame := testFrame(manager.GameOver)
	frame.Cols = 16
	frame.Rows = 9
	frame.Cause = types.OutOfBounds
	v.OnFrame(frame)
	v.OnGameOver(types.OutOfBounds)

	mid := boardTop + frame.Rows/2
	v.Draw(0)
	if strings.Contains(rowText(screen, mid), "GAME OVER") {
		t.Fatalf("banner already in place before the slide ran")
	}

	for i := 0; i < 40; i++ {
		v.Draw(0.1)
	}
	if got := rowText(screen, mid); !strings.Contains(got, "GAME OVER") {
		t.Fatalf("banner row = %q", got)
	}
	if got := rowText(screen, mid+1); !strings.Contains(got, "PRESS SPACE TO RESTART") {
		t.Fatalf("restart row = %q", got)
	}
	if got := rowText(screen, boardTop+frame.Rows+1); !strings.HasPrefix(got, string(types.OutOfBounds)) {
		t.Fatalf("cause row = %q", got)
	}

	v.OnGameReset()
	v.OnFrame(testFrame(manager.Playing))
	v.Draw(0)
	if strings.Contains(rowText(screen, mid), "GAME OVER") {
		t.Fatalf("banner still shown after reset")
	}
}
