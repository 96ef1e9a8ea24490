package manager

import (
	"time"

	"snake-sim/game/types"

	"github.com/pkg/errors"
)

// Phase is the session lifecycle state
type Phase int

const (
	Waiting Phase = iota
	Playing
	GameOver
)

func (p Phase) Name() string {
	switch p {
	case Waiting:
		return "waiting"
	case Playing:
		return "playing"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

func (p Phase) String() string {
	return p.Name()
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.Name()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "waiting":
		*p = Waiting
	case "playing":
		*p = Playing
	case "game-over":
		*p = GameOver
	default:
		return errors.Errorf("unknown phase %q", text)
	}
	return nil
}

// Round is the record of one finished game
type Round struct {
	Score    float64          `json:"score"`
	Length   int              `json:"length"`
	Ticks    uint64           `json:"ticks"`
	Cause    types.DeathCause `json:"cause"`
	Finished time.Time        `json:"finished"`
}

const DefaultHistoryLimit = 20

// StateManager tracks the phase, the high score and a bounded history of
// finished rounds. Nothing is written to disk.
type StateManager struct {
	phase        Phase
	highScore    float64
	history      []Round
	historyLimit int
}

func NewStateManager(historyLimit int) *StateManager {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &StateManager{
		phase:        Waiting,
		history:      make([]Round, 0, historyLimit),
		historyLimit: historyLimit,
	}
}

func (sm *StateManager) Phase() Phase {
	return sm.phase
}

// Transition moves to the next phase. Playing may be re-entered from any phase
// (start and restart); GameOver is only reachable from Playing.
func (sm *StateManager) Transition(to Phase) error {
	switch to {
	case Playing:
	case GameOver:
		if sm.phase != Playing {
			return errors.Wrapf(types.ErrInvalidState, "%s -> %s", sm.phase.Name(), to.Name())
		}
	default:
		return errors.Wrapf(types.ErrInvalidState, "%s -> %s", sm.phase.Name(), to.Name())
	}
	sm.phase = to
	return nil
}

// RecordRound stores a finished round and reports whether it set a new high score
func (sm *StateManager) RecordRound(r Round) bool {
	if len(sm.history) == sm.historyLimit {
		copy(sm.history, sm.history[1:])
		sm.history = sm.history[:len(sm.history)-1]
	}
	sm.history = append(sm.history, r)

	if r.Score > sm.highScore {
		sm.highScore = r.Score
		return true
	}
	return false
}

func (sm *StateManager) HighScore() float64 {
	return sm.highScore
}

// History returns the finished rounds, oldest first
func (sm *StateManager) History() []Round {
	history := make([]Round, len(sm.history))
	copy(history, sm.history)
	return history
}
