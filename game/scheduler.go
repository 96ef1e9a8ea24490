package game

import (
	"context"
	"time"

	"snake-sim/game/manager"
	"snake-sim/game/types"
)

type CommandKind int

const (
	CmdSteer CommandKind = iota
	CmdStart
	CmdGrow
	CmdFaster
	CmdSlower
)

// SpeedStep is the factor one faster or slower command applies to the speed
const SpeedStep = 1.25

// Command is an input for the goroutine that owns the session
type Command struct {
	Kind CommandKind
	Axis types.Axis
}

func SteerCommand(axis types.Axis) Command {
	return Command{Kind: CmdSteer, Axis: axis}
}

// Scheduler runs one tick per interval and never overlaps ticks. Use Poll from
// a frame loop or Run from a dedicated goroutine, not both.
type Scheduler struct {
	game     *Game
	deadline time.Time
	armed    bool
}

func NewScheduler(g *Game) *Scheduler {
	return &Scheduler{game: g}
}

// Poll runs at most one tick once the deadline has passed and reports whether
// it did. The first call after a round starts only arms the deadline.
func (s *Scheduler) Poll(now time.Time) (bool, error) {
	if s.game.Phase() != manager.Playing {
		s.armed = false
		return false, nil
	}
	if !s.armed {
		s.deadline = now.Add(s.game.Interval())
		s.armed = true
		return false, nil
	}
	if now.Before(s.deadline) {
		return false, nil
	}

	_, err := s.game.Tick()
	s.deadline = now.Add(s.game.Interval())
	return true, err
}

// Apply executes a command in the caller's goroutine. Start is ignored while
// a round is being played.
func (s *Scheduler) Apply(cmd Command) error {
	switch cmd.Kind {
	case CmdSteer:
		s.game.Steer(cmd.Axis)
	case CmdStart:
		if s.game.Phase() == manager.Playing {
			return nil
		}
		return s.game.Start()
	case CmdGrow:
		s.game.Grow()
	case CmdFaster:
		return s.game.SetSpeed(s.game.Speed() * SpeedStep)
	case CmdSlower:
		return s.game.SetSpeed(s.game.Speed() / SpeedStep)
	}
	return nil
}

// Run drives the session until ctx is done. The timer is re-armed with a fresh
// Interval after every tick and stays stopped while no round is being played.
func (s *Scheduler) Run(ctx context.Context, cmds <-chan Command) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	armed := false
	arm := func() {
		timer.Stop()
		timer.Reset(s.game.Interval())
		armed = true
	}
	if s.game.Phase() == manager.Playing {
		arm()
	}

	for {
		var tick <-chan time.Time
		if armed {
			tick = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd, ok := <-cmds:
			if !ok {
				cmds = nil
				continue
			}
			wasPlaying := s.game.Phase() == manager.Playing
			if err := s.Apply(cmd); err != nil {
				s.game.log.WithError(err).Error("command failed")
				continue
			}
			if cmd.Kind == CmdStart && !wasPlaying {
				arm()
			}

		case <-tick:
			armed = false
			if _, err := s.game.Tick(); err != nil {
				s.game.log.WithError(err).Warn("tick")
			}
			if s.game.Phase() == manager.Playing {
				arm()
			}
		}
	}
}
