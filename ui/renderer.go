package ui

import (
	"fmt"
	"math"

	"snake-sim/anim"
	"snake-sim/game"
	"snake-sim/game/manager"
	"snake-sim/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10
	bannerSize    = 48
)

// Renderer draws the latest snapshot it was given. It is a game.Observer and
// must be driven from the goroutine that owns the window.
type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32

	debugGrid bool
	frame     game.Snapshot
	slide     *anim.Slide
}

func NewRenderer(debugGrid bool) *Renderer {
	r := &Renderer{
		debugGrid: debugGrid,
		slide:     anim.NewSlide(bannerSize*4, anim.DefaultDuration, anim.DefaultStep),
	}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.statsPanel = r.screenWidth / 5
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

var _ game.Observer = (*Renderer)(nil)

func (r *Renderer) OnFrame(s game.Snapshot)     { r.frame = s }
func (r *Renderer) OnScoreChanged(float64)      {}
func (r *Renderer) OnGameOver(types.DeathCause) { r.slide.Start() }
func (r *Renderer) OnGameReset()                { r.slide.Reset() }

// layout fits the room into the game area, keeping cells square
func (r *Renderer) layout(cols, rows int) {
	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)

	r.cellSize = min(availableWidth/int32(cols), availableHeight/int32(rows))
	if r.cellSize < 1 {
		r.cellSize = 1
	}
	r.totalGridWidth = r.cellSize * int32(cols)
	r.totalGridHeight = r.cellSize * int32(rows)

	r.offsetX = borderPadding + (availableWidth-r.totalGridWidth)/2
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2
}

// cellPosition maps a room cell to the top-left pixel of its square.
// Room y grows upwards, screen y downwards.
func (r *Renderer) cellPosition(p types.Point) (int32, int32) {
	col := p.X + r.frame.Cols/2
	row := p.Y + r.frame.Rows/2
	x := r.offsetX + int32(col)*r.cellSize
	y := r.offsetY + int32(r.frame.Rows-1-row)*r.cellSize
	return x, y
}

// Draw renders one frame; dt is the frame time in seconds
func (r *Renderer) Draw(history []manager.Round, dt float32) {
	offset := r.slide.Update(dt)

	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	if r.frame.Cols == 0 || r.frame.Rows == 0 {
		return
	}
	r.layout(r.frame.Cols, r.frame.Rows)
	fontSize := min(r.screenHeight/30, r.statsPanel/10)
	lineHeight := fontSize + fontSize/3

	rl.DrawRectangleLines(r.offsetX-2, r.offsetY-2, r.totalGridWidth+4, r.totalGridHeight+4, rl.White)

	if r.debugGrid {
		for x := int32(0); x < int32(r.frame.Cols); x++ {
			for y := int32(0); y < int32(r.frame.Rows); y++ {
				rl.DrawRectangleLines(r.offsetX+x*r.cellSize, r.offsetY+y*r.cellSize, r.cellSize, r.cellSize, rl.DarkGray)
			}
		}
	}

	for _, food := range r.frame.Food {
		x, y := r.cellPosition(food)
		rl.DrawRectangle(x+2, y+2, r.cellSize-4, r.cellSize-4, rl.Red)
	}
	r.drawSnake()
	r.drawStatsPanel(history, fontSize, lineHeight)

	switch r.frame.Phase {
	case manager.Waiting:
		r.drawBanner("PRESS SPACE TO START", 0, rl.White)
	case manager.GameOver:
		r.drawBanner("GAME OVER", int32(offset)-bannerSize, rl.Red)
		if !r.slide.Running() {
			r.drawBanner("PRESS SPACE TO RESTART", bannerSize, rl.White)
		}
	}
}

func (r *Renderer) drawSnake() {
	body := r.frame.Body
	for j := len(body) - 1; j >= 0; j-- {
		x, y := r.cellPosition(body[j])
		color := rl.Green
		if j == 0 {
			color = rl.Lime
		}
		rl.DrawRectangle(x+1, y+1, r.cellSize-2, r.cellSize-2, color)
	}
	if len(body) == 0 {
		return
	}

	// heading indicator on the head
	headX, headY := r.cellPosition(body[0])
	halfCell := r.cellSize / 2
	cx, cy := float32(headX+halfCell), float32(headY+halfCell)
	q := float32(r.cellSize) / 4
	var a, b, c rl.Vector2
	switch r.frame.Heading {
	case types.Right:
		a, b, c = rl.Vector2{X: cx + q, Y: cy}, rl.Vector2{X: cx - q, Y: cy - q}, rl.Vector2{X: cx - q, Y: cy + q}
	case types.Left:
		a, b, c = rl.Vector2{X: cx - q, Y: cy}, rl.Vector2{X: cx + q, Y: cy + q}, rl.Vector2{X: cx + q, Y: cy - q}
	case types.Down:
		a, b, c = rl.Vector2{X: cx, Y: cy + q}, rl.Vector2{X: cx + q, Y: cy - q}, rl.Vector2{X: cx - q, Y: cy - q}
	default:
		a, b, c = rl.Vector2{X: cx, Y: cy - q}, rl.Vector2{X: cx - q, Y: cy + q}, rl.Vector2{X: cx + q, Y: cy + q}
	}
	rl.DrawTriangle(a, b, c, rl.Yellow)
}

func (r *Renderer) drawBanner(text string, dy int32, color rl.Color) {
	width := rl.MeasureText(text, bannerSize)
	x := r.offsetX + (r.totalGridWidth-width)/2
	y := r.offsetY + r.totalGridHeight/2 - bannerSize/2 + dy
	rl.DrawText(text, x, y, bannerSize, color)
}

func (r *Renderer) drawStatsPanel(history []manager.Round, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	rl.DrawText(r.frame.ScoreText, statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("HIGH: %.0f", math.RoundToEven(r.frame.HighScore)), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Length: %d", r.frame.Length), statsX, statsY, fontSize, rl.LightGray)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Rounds: %d", len(history)), statsX, statsY, fontSize, rl.LightGray)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Speed: x%.2f", r.frame.Speed), statsX, statsY, fontSize, rl.LightGray)
	statsY += lineHeight
	if r.frame.Cause != types.NoDeath {
		rl.DrawText(string(r.frame.Cause), statsX, statsY, fontSize, rl.Red)
	}

	r.drawHistoryGraph(history, statsX, fontSize)
}

func (r *Renderer) drawHistoryGraph(history []manager.Round, graphX, fontSize int32) {
	graphY := r.screenHeight - r.graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("History", graphX, graphY-fontSize-5, fontSize, rl.White)
	if len(history) < 2 {
		return
	}

	maxScore := 1.0
	for _, round := range history {
		if round.Score > maxScore {
			maxScore = round.Score
		}
	}

	point := func(i int) (int32, int32) {
		x := graphX + int32(float64(r.graphWidth)*float64(i)/float64(len(history)-1))
		y := graphY + r.graphHeight - int32(float64(r.graphHeight)*history[i].Score/maxScore)
		return x, y
	}
	for i := 1; i < len(history); i++ {
		x1, y1 := point(i - 1)
		x2, y2 := point(i)
		rl.DrawLine(x1, y1, x2, y2, rl.Green)
	}
}
