package entity

import (
	"snake-sim/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Room is the immutable grid geometry. Cells are centred on the origin:
// a room of 16 columns spans x in [-8, 8).
type Room struct {
	cols, rows       int
	cellSize         float64
	offsetX, offsetY float64
}

func NewRoom(cols, rows int, cellSize, offsetX, offsetY float64) (*Room, error) {
	if cols <= 0 || rows <= 0 {
		return nil, errors.Wrapf(types.ErrInvalidConfig, "room %dx%d", cols, rows)
	}
	if cellSize <= 0 {
		return nil, errors.Wrapf(types.ErrInvalidConfig, "cell size %v", cellSize)
	}
	return &Room{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		offsetX:  offsetX,
		offsetY:  offsetY,
	}, nil
}

func (r *Room) Cols() int              { return r.cols }
func (r *Room) Rows() int              { return r.rows }
func (r *Room) CellSize() float64      { return r.cellSize }
func (r *Room) Capacity() int          { return r.cols * r.rows }
func (r *Room) Offset() (x, y float64) { return r.offsetX, r.offsetY }

// MinCell is the bottom-left cell of the room
func (r *Room) MinCell() types.Point {
	return types.Point{X: -(r.cols / 2), Y: -(r.rows / 2)}
}

// Contains reports whether -cols/2 <= x < cols/2 and -rows/2 <= y < rows/2.
// Doubling keeps the half-width exact for odd sizes.
func (r *Room) Contains(p types.Point) bool {
	return 2*p.X >= -r.cols && 2*p.X < r.cols &&
		2*p.Y >= -r.rows && 2*p.Y < r.rows
}

// Column returns the 0-based column index of p, left to right
func (r *Room) Column(p types.Point) int {
	return p.X - r.MinCell().X
}

// Row returns the 0-based row index of p, bottom to top
func (r *Room) Row(p types.Point) int {
	return p.Y - r.MinCell().Y
}

// WorldPosition maps a cell to world space: cell*cellSize + offset
func (r *Room) WorldPosition(p types.Point) (x, y float64) {
	return float64(p.X)*r.cellSize + r.offsetX, float64(p.Y)*r.cellSize + r.offsetY
}

// RandomCellExcluding draws a uniformly random cell that is not in occupied.
// Rejection sampling is bounded; once it gives up the free cells are enumerated,
// so a nearly full room still resolves and a full one returns ErrGridFull.
func (r *Room) RandomCellExcluding(rng *rand.Rand, occupied types.CellSet) (types.Point, error) {
	taken := 0
	for p := range occupied {
		if r.Contains(p) {
			taken++
		}
	}
	if taken >= r.Capacity() {
		return types.Point{}, errors.Wrapf(types.ErrGridFull, "%d of %d cells occupied", taken, r.Capacity())
	}

	origin := r.MinCell()
	for attempt := 0; attempt < 4*r.Capacity(); attempt++ {
		p := types.Point{
			X: origin.X + rng.Intn(r.cols),
			Y: origin.Y + rng.Intn(r.rows),
		}
		if !occupied.Has(p) {
			return p, nil
		}
	}

	free := make([]types.Point, 0, r.Capacity()-taken)
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			p := types.Point{X: origin.X + x, Y: origin.Y + y}
			if !occupied.Has(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, errors.Wrap(types.ErrGridFull, "no free cell after scan")
	}
	return free[rng.Intn(len(free))], nil
}
