package game

import (
	"snake-sim/game/manager"
	"snake-sim/game/types"
)

// Snapshot is a copy of the visible session state. Observers may keep it.
type Snapshot struct {
	Session   string           `json:"session"`
	Tick      uint64           `json:"tick"`
	Phase     manager.Phase    `json:"phase"`
	Heading   types.Heading    `json:"heading"`
	Cols      int              `json:"cols"`
	Rows      int              `json:"rows"`
	Body      []types.Point    `json:"body"`
	Food      []types.Point    `json:"food"`
	Score     float64          `json:"score"`
	ScoreText string           `json:"scoreText"`
	HighScore float64          `json:"highScore"`
	Length    int              `json:"length"`
	Speed     float64          `json:"speed"`
	Cause     types.DeathCause `json:"cause,omitempty"`
}

// Observer is notified from the goroutine that drives the session.
// Implementations must not block.
type Observer interface {
	OnFrame(Snapshot)
	OnScoreChanged(score float64)
	OnGameOver(cause types.DeathCause)
	OnGameReset()
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Frame        func(Snapshot)
	ScoreChanged func(float64)
	GameOver     func(types.DeathCause)
	GameReset    func()
}

func (o ObserverFuncs) OnFrame(s Snapshot) {
	if o.Frame != nil {
		o.Frame(s)
	}
}

func (o ObserverFuncs) OnScoreChanged(score float64) {
	if o.ScoreChanged != nil {
		o.ScoreChanged(score)
	}
}

func (o ObserverFuncs) OnGameOver(cause types.DeathCause) {
	if o.GameOver != nil {
		o.GameOver(cause)
	}
}

func (o ObserverFuncs) OnGameReset() {
	if o.GameReset != nil {
		o.GameReset()
	}
}
