package types

import "fmt"

// Point is a discrete grid cell. All game logic compares cells, never world coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// CellSet is a set of occupied cells
type CellSet map[Point]struct{}

func NewCellSet(points ...Point) CellSet {
	s := make(CellSet, len(points))
	for _, p := range points {
		s.Add(p)
	}
	return s
}

func (s CellSet) Add(p Point) {
	s[p] = struct{}{}
}

func (s CellSet) Has(p Point) bool {
	_, ok := s[p]
	return ok
}

func (s CellSet) Len() int {
	return len(s)
}

// Axis is a raw two-axis input sample, each component in {-1, 0, 1}
type Axis struct {
	X, Y int
}

func (a Axis) IsZero() bool {
	return a.X == 0 && a.Y == 0
}

// Heading is the snake's movement direction. Up is +Y.
type Heading int

const (
	None Heading = iota
	Up
	Right
	Down
	Left
)

// Vector converts a Heading into a one-cell displacement
func (h Heading) Vector() Point {
	switch h {
	case Up:
		return Point{X: 0, Y: 1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: -1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the heading that would reverse h
func (h Heading) Opposite() Heading {
	switch h {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return None
	}
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// ParseHeading accepts the names produced by String, "none" included.
func ParseHeading(s string) (Heading, error) {
	switch s {
	case "none":
		return None, nil
	case "up":
		return Up, nil
	case "right":
		return Right, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	}
	return None, fmt.Errorf("unknown heading %q", s)
}

func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// DeathCause records why a snake died
type DeathCause string

const (
	NoDeath       DeathCause = ""
	OutOfBounds   DeathCause = "out-of-bounds"
	SelfCollision DeathCause = "self-collision"
)
