package entity

import (
	"testing"

	"snake-sim/game/types"
)

// foodCells is a FoodLookup backed by a map of cell to index
type foodCells map[types.Point]int

func (f foodCells) FoodAt(p types.Point) (int, bool) {
	i, ok := f[p]
	return i, ok
}

func TestSnakeResetStacksSegments(t *testing.T) {
	s := NewSnake(3, types.Point{X: 1, Y: 1}, types.Up)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	for i, p := range s.Body() {
		if p != (types.Point{X: 1, Y: 1}) {
			t.Fatalf("segment %d = %v, want (1,1)", i, p)
		}
	}
	if !s.Alive() || s.Heading() != types.Up {
		t.Fatalf("alive=%v heading=%v, want alive up", s.Alive(), s.Heading())
	}
}

func TestSnakeStepMovesChain(t *testing.T) {
	room := mustRoom(t, 16, 9)
	s := NewSnake(3, types.Point{}, types.Right)

	for i := 0; i < 3; i++ {
		if res := s.Step(room, nil); res.Outcome != Moved {
			t.Fatalf("step %d outcome = %v, want moved", i, res.Outcome)
		}
	}

	want := []types.Point{{X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0}}
	got := s.Body()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("body = %v, want %v", got, want)
		}
	}
}

func TestSnakeRejectsDirectReversal(t *testing.T) {
	s := NewSnake(3, types.Point{}, types.Up)

	if s.SetDesiredHeading(types.Axis{X: 0, Y: -1}) {
		t.Fatalf("SetDesiredHeading(down) accepted while heading up")
	}
	if s.Pending() != types.None {
		t.Fatalf("Pending() = %v, want none", s.Pending())
	}

	room := mustRoom(t, 16, 9)
	s.Step(room, nil)
	if s.Heading() != types.Up {
		t.Fatalf("Heading() = %v, want up", s.Heading())
	}
}

func TestSnakeIgnoresZeroInput(t *testing.T) {
	s := NewSnake(1, types.Point{}, types.Left)
	if s.SetDesiredHeading(types.Axis{}) {
		t.Fatalf("zero axis accepted")
	}
}

func TestSnakeDiagonalInputPrefersVertical(t *testing.T) {
	tests := []struct {
		name    string
		heading types.Heading
		axis    types.Axis
		want    types.Heading
	}{
		{"vertical wins", types.Right, types.Axis{X: -1, Y: 1}, types.Up},
		{"vertical reversal falls back to horizontal", types.Up, types.Axis{X: -1, Y: -1}, types.Left},
		{"both blocked", types.Up, types.Axis{X: 0, Y: -1}, types.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(3, types.Point{}, tt.heading)
			s.SetDesiredHeading(tt.axis)
			if s.Pending() != tt.want {
				t.Fatalf("Pending() = %v, want %v", s.Pending(), tt.want)
			}
		})
	}
}

func TestSnakeOneCommittedTurnPerTick(t *testing.T) {
	room := mustRoom(t, 16, 9)
	s := NewSnake(4, types.Point{}, types.Up)
	s.Step(room, nil)
	s.Step(room, nil)

	// Left then Down within one tick: Down is checked against Up and rejected,
	// so the snake cannot fold back on itself.
	s.SetDesiredHeading(types.Axis{X: -1})
	s.SetDesiredHeading(types.Axis{Y: -1})
	if s.Pending() != types.Left {
		t.Fatalf("Pending() = %v, want left", s.Pending())
	}

	// Last valid write wins
	s.SetDesiredHeading(types.Axis{X: 1})
	if s.Pending() != types.Right {
		t.Fatalf("Pending() = %v, want right", s.Pending())
	}

	res := s.Step(room, nil)
	if res.Outcome != Moved || s.Heading() != types.Right {
		t.Fatalf("outcome=%v heading=%v, want moved right", res.Outcome, s.Heading())
	}
	if s.Pending() != types.None {
		t.Fatalf("pending not consumed: %v", s.Pending())
	}
}

func TestSnakeDiesOutOfBounds(t *testing.T) {
	room := mustRoom(t, 16, 9)
	s := NewSnake(1, types.Point{X: 7, Y: 0}, types.Right)

	res := s.Step(room, nil)
	if res.Outcome != Died || res.Cause != types.OutOfBounds {
		t.Fatalf("result = %+v, want died out-of-bounds", res)
	}
	if s.Head() != (types.Point{X: 7, Y: 0}) {
		t.Fatalf("head moved on death: %v", s.Head())
	}
}

func TestSnakeSelfCollisionBeatsFood(t *testing.T) {
	room := mustRoom(t, 16, 9)
	s := NewSnake(1, types.Point{}, types.Right)
	for i := 0; i < 4; i++ {
		s.Grow()
	}
	// Trace a loop: right, right, up, left, then down into the body
	s.Step(room, nil)
	s.Step(room, nil)
	s.SetDesiredHeading(types.Axis{Y: 1})
	s.Step(room, nil)
	s.SetDesiredHeading(types.Axis{X: -1})
	s.Step(room, nil)
	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}

	s.SetDesiredHeading(types.Axis{Y: -1})
	next := s.Head().Add(types.Down.Vector())
	if !s.Occupies(next) {
		t.Fatalf("setup: %v not on body %v", next, s.Body())
	}

	food := foodCells{next: 0}
	res := s.Step(room, food)
	if res.Outcome != Died || res.Cause != types.SelfCollision {
		t.Fatalf("result = %+v, want died self-collision", res)
	}
}

func TestSnakeTailCellIsFatal(t *testing.T) {
	room := mustRoom(t, 16, 9)
	// A 4-long snake in a 2x2 loop moves onto its own tail cell
	s := NewSnake(1, types.Point{}, types.Right)
	s.Grow()
	s.Grow()
	s.Grow()
	s.Step(room, nil) // (1,0)
	s.SetDesiredHeading(types.Axis{Y: 1})
	s.Step(room, nil) // (1,1)
	s.SetDesiredHeading(types.Axis{X: -1})
	s.Step(room, nil) // (0,1)
	s.SetDesiredHeading(types.Axis{Y: -1})

	if s.Tail() != (types.Point{}) {
		t.Fatalf("setup: tail = %v, want origin", s.Tail())
	}
	res := s.Step(room, foodCells{{}: 0})
	if res.Outcome != Died || res.Cause != types.SelfCollision {
		t.Fatalf("result = %+v, want died self-collision", res)
	}
}

func TestSnakeAteReportsFoodIndex(t *testing.T) {
	room := mustRoom(t, 16, 9)
	s := NewSnake(2, types.Point{}, types.Up)

	res := s.Step(room, foodCells{{X: 0, Y: 1}: 3})
	if res.Outcome != Ate || res.FoodIndex != 3 || res.Cell != (types.Point{X: 0, Y: 1}) {
		t.Fatalf("result = %+v, want ate index 3 at (0,1)", res)
	}
}

func TestSnakeGrowthAppliesOnNextStep(t *testing.T) {
	room := mustRoom(t, 16, 9)
	s := NewSnake(3, types.Point{X: -5, Y: 0}, types.Right)
	for i := 0; i < 3; i++ {
		s.Step(room, nil)
	}

	tailBefore := s.Tail()
	s.Grow()
	if s.Len() != 3 {
		t.Fatalf("Len() after Grow = %d, want 3 until next step", s.Len())
	}

	s.Step(room, nil)
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if s.Tail() != tailBefore {
		t.Fatalf("new tail = %v, want previous tail cell %v", s.Tail(), tailBefore)
	}
	if s.GrowthPending() != 0 {
		t.Fatalf("GrowthPending() = %d, want 0", s.GrowthPending())
	}
}

func TestSnakeLengthNonDecreasing(t *testing.T) {
	room := mustRoom(t, 16, 9)
	s := NewSnake(2, types.Point{X: -7, Y: 0}, types.Right)

	food := foodCells{{X: -5, Y: 0}: 0, {X: -2, Y: 0}: 1}
	prev := s.Len()
	eaten := 0
	for s.Alive() {
		res := s.Step(room, food)
		if s.Len() < prev {
			t.Fatalf("length shrank from %d to %d", prev, s.Len())
		}
		prev = s.Len()
		if res.Outcome == Ate {
			eaten++
			delete(food, res.Cell)
			s.Grow()
		}
	}
	if eaten != 2 {
		t.Fatalf("eaten = %d, want 2", eaten)
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
}

func TestDeadSnakeStepIsNoop(t *testing.T) {
	room := mustRoom(t, 2, 2)
	s := NewSnake(1, types.Point{}, types.Up)

	first := s.Step(room, nil)
	if first.Outcome != Died {
		t.Fatalf("first step = %+v, want died", first)
	}
	body := s.Body()

	again := s.Step(room, nil)
	if again != first {
		t.Fatalf("second step = %+v, want %+v", again, first)
	}
	if s.Body()[0] != body[0] {
		t.Fatalf("dead snake moved")
	}
	if s.SetDesiredHeading(types.Axis{X: 1}) {
		t.Fatalf("dead snake accepted input")
	}

	s.Reset(3, types.Point{}, types.Right)
	if !s.Alive() || s.Len() != 3 || s.Cause() != types.NoDeath {
		t.Fatalf("after reset alive=%v len=%d cause=%q", s.Alive(), s.Len(), s.Cause())
	}
}
