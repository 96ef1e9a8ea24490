package entity

import (
	"snake-sim/game/types"
)

// Outcome is the result kind of a single Step
type Outcome int

const (
	NoOutcome Outcome = iota
	Moved
	Ate
	Died
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Died:
		return "died"
	default:
		return "none"
	}
}

// StepResult describes what happened during one Step.
// Cell is the new head on Moved/Ate and the fatal cell on Died.
type StepResult struct {
	Outcome   Outcome
	Cell      types.Point
	FoodIndex int
	Cause     types.DeathCause
}

// FoodLookup reports whether a cell holds food and at which index
type FoodLookup interface {
	FoodAt(p types.Point) (int, bool)
}

// Snake owns the body cells, heading and growth queue. Head is Body[0].
type Snake struct {
	body          []types.Point
	heading       types.Heading
	pending       types.Heading
	growthPending int
	alive         bool
	last          StepResult
}

func NewSnake(length int, start types.Point, heading types.Heading) *Snake {
	s := &Snake{}
	s.Reset(length, start, heading)
	return s
}

// Reset reseeds the body with length segments stacked on start.
func (s *Snake) Reset(length int, start types.Point, heading types.Heading) {
	if length < 1 {
		length = 1
	}
	s.body = make([]types.Point, length)
	for i := range s.body {
		s.body[i] = start
	}
	s.heading = heading
	s.pending = types.None
	s.growthPending = 0
	s.alive = true
	s.last = StepResult{}
}

func (s *Snake) Head() types.Point {
	return s.body[0]
}

func (s *Snake) Tail() types.Point {
	return s.body[len(s.body)-1]
}

// Body returns a copy of the segments, head first
func (s *Snake) Body() []types.Point {
	body := make([]types.Point, len(s.body))
	copy(body, s.body)
	return body
}

func (s *Snake) Len() int                { return len(s.body) }
func (s *Snake) Heading() types.Heading  { return s.heading }
func (s *Snake) Pending() types.Heading  { return s.pending }
func (s *Snake) Alive() bool             { return s.alive }
func (s *Snake) GrowthPending() int      { return s.growthPending }
func (s *Snake) Cause() types.DeathCause { return s.last.Cause }
func (s *Snake) LastResult() StepResult  { return s.last }

// Occupies reports whether any segment sits on p
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.body {
		if part == p {
			return true
		}
	}
	return false
}

// SetDesiredHeading buffers a direction change for the next Step.
// Candidates are checked against the committed heading, so a buffered value can
// never reverse the snake; a later valid sample overwrites an earlier one.
func (s *Snake) SetDesiredHeading(axis types.Axis) bool {
	if !s.alive || axis.IsZero() {
		return false
	}

	reverse := s.heading.Opposite()

	// Vertical input wins over horizontal, as a diagonal sample resolves to up/down
	var vertical, horizontal types.Heading
	switch {
	case axis.Y > 0:
		vertical = types.Up
	case axis.Y < 0:
		vertical = types.Down
	}
	switch {
	case axis.X > 0:
		horizontal = types.Right
	case axis.X < 0:
		horizontal = types.Left
	}

	candidate := types.None
	if vertical != types.None && vertical != reverse {
		candidate = vertical
	} else if horizontal != types.None && horizontal != reverse {
		candidate = horizontal
	}
	if candidate == types.None {
		return false
	}

	s.pending = candidate
	return true
}

// Grow queues one segment, appended on the next Step
func (s *Snake) Grow() {
	s.growthPending++
}

// Step advances the snake by one cell. Checks run in a fixed order:
// bounds, then self-collision, then food. A dead snake returns its
// fatal result unchanged.
func (s *Snake) Step(room *Room, food FoodLookup) StepResult {
	if !s.alive {
		return s.last
	}

	if s.pending != types.None {
		s.heading = s.pending
		s.pending = types.None
	}

	next := s.Head().Add(s.heading.Vector())

	if !room.Contains(next) {
		return s.die(next, types.OutOfBounds)
	}
	// The tail still counts: it has not vacated its cell yet
	if s.Occupies(next) {
		return s.die(next, types.SelfCollision)
	}

	result := StepResult{Outcome: Moved, Cell: next, FoodIndex: -1}
	if food != nil {
		if i, ok := food.FoodAt(next); ok {
			result.Outcome = Ate
			result.FoodIndex = i
		}
	}

	s.advance(next)
	s.last = result
	return result
}

func (s *Snake) advance(next types.Point) {
	tail := s.Tail()
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = next

	if s.growthPending > 0 {
		s.body = append(s.body, tail)
		s.growthPending--
	}
}

func (s *Snake) die(at types.Point, cause types.DeathCause) StepResult {
	s.alive = false
	s.pending = types.None
	s.last = StepResult{Outcome: Died, Cell: at, FoodIndex: -1, Cause: cause}
	return s.last
}
