// Package term draws a session on a character terminal through tcell.
package term

import (
	"fmt"
	"sync"

	"snake-sim/anim"
	"snake-sim/game"
	"snake-sim/game/manager"
	"snake-sim/game/types"

	"github.com/gdamore/tcell/v2"
)

const (
	// each room cell is two characters wide so cells look square
	cellWidth = 2

	boardLeft = 1
	boardTop  = 2

	runeHead  = '█'
	runeBody  = '▓'
	runeFood  = '◆'
	runeEmpty = '·'

	slideRows = 8
)

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleBody    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleOver    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// View keeps the latest frame pushed by the session goroutine and paints it
// when Draw is called from the UI goroutine.
type View struct {
	screen tcell.Screen
	debug  bool

	mu       sync.Mutex
	frame    game.Snapshot
	hasFrame bool
	slide    *anim.Slide
}

func NewView(screen tcell.Screen, debug bool) *View {
	return &View{
		screen: screen,
		debug:  debug,
		slide:  anim.NewSlide(slideRows, anim.DefaultDuration, anim.DefaultStep),
	}
}

var _ game.Observer = (*View)(nil)

func (v *View) OnFrame(s game.Snapshot) {
	v.mu.Lock()
	v.frame = s
	v.hasFrame = true
	v.mu.Unlock()
}

func (v *View) OnScoreChanged(float64) {}

func (v *View) OnGameOver(types.DeathCause) {
	v.mu.Lock()
	v.slide.Start()
	v.mu.Unlock()
}

func (v *View) OnGameReset() {
	v.mu.Lock()
	v.slide.Reset()
	v.mu.Unlock()
}

// Draw paints the latest frame and shows it; dt advances the game-over slide
func (v *View) Draw(dt float32) {
	v.mu.Lock()
	offset := v.slide.Update(dt)
	slideDone := !v.slide.Running()
	frame, ok := v.frame, v.hasFrame
	v.mu.Unlock()

	v.screen.Clear()
	defer v.screen.Show()

	if !ok {
		v.drawText(0, 0, styleDefault, "waiting for session...")
		return
	}

	v.drawText(0, 0, styleDefault, fmt.Sprintf("%s  HIGH: %.0f  LENGTH: %d  SPEED: x%.2f", frame.ScoreText, frame.HighScore, frame.Length, frame.Speed))
	v.drawBorder(frame.Cols, frame.Rows)

	if v.debug {
		for x := 0; x < frame.Cols; x++ {
			for y := 0; y < frame.Rows; y++ {
				v.setCell(boardLeft+x*cellWidth, boardTop+y, runeEmpty, styleGrid)
			}
		}
	}

	for _, food := range frame.Food {
		x, y := cellPosition(frame, food)
		v.setCell(x, y, runeFood, styleFood)
	}
	for i := len(frame.Body) - 1; i >= 0; i-- {
		x, y := cellPosition(frame, frame.Body[i])
		if i == 0 {
			v.setCell(x, y, runeHead, styleHead)
		} else {
			v.setCell(x, y, runeBody, styleBody)
		}
	}

	mid := boardTop + frame.Rows/2
	switch frame.Phase {
	case manager.Waiting:
		v.drawBanner(frame, mid, styleBanner, "PRESS SPACE TO START")
	case manager.GameOver:
		if row := mid + int(offset); row < boardTop+frame.Rows {
			v.drawBanner(frame, row, styleOver, "GAME OVER")
		}
		if slideDone {
			v.drawBanner(frame, mid+1, styleBanner, "PRESS SPACE TO RESTART")
		}
		v.drawText(0, boardTop+frame.Rows+1, styleOver, string(frame.Cause))
	}
}

// cellPosition maps a room cell to the left character of its square.
// Room y grows upwards, terminal rows downwards.
func cellPosition(frame game.Snapshot, p types.Point) (int, int) {
	col := p.X + frame.Cols/2
	row := p.Y + frame.Rows/2
	return boardLeft + col*cellWidth, boardTop + frame.Rows - 1 - row
}

func (v *View) setCell(x, y int, r rune, style tcell.Style) {
	v.screen.SetContent(x, y, r, nil, style)
	v.screen.SetContent(x+1, y, r, nil, style)
}

func (v *View) drawBorder(cols, rows int) {
	left, right := boardLeft-1, boardLeft+cols*cellWidth
	top, bottom := boardTop-1, boardTop+rows
	for x := left + 1; x < right; x++ {
		v.screen.SetContent(x, top, tcell.RuneHLine, nil, styleBorder)
		v.screen.SetContent(x, bottom, tcell.RuneHLine, nil, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		v.screen.SetContent(left, y, tcell.RuneVLine, nil, styleBorder)
		v.screen.SetContent(right, y, tcell.RuneVLine, nil, styleBorder)
	}
	v.screen.SetContent(left, top, tcell.RuneULCorner, nil, styleBorder)
	v.screen.SetContent(right, top, tcell.RuneURCorner, nil, styleBorder)
	v.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, styleBorder)
	v.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, styleBorder)
}

func (v *View) drawBanner(frame game.Snapshot, row int, style tcell.Style, text string) {
	width := frame.Cols * cellWidth
	x := boardLeft + (width-len([]rune(text)))/2
	if x < 0 {
		x = 0
	}
	v.drawText(x, row, style, text)
}

func (v *View) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
