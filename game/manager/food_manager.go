package manager

import (
	"snake-sim/game/entity"
	"snake-sim/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// FoodManager owns the ordered food list. The list order is the food index
// reported by Snake.Step.
type FoodManager struct {
	foodList []types.Point
}

func NewFoodManager() *FoodManager {
	return &FoodManager{
		foodList: make([]types.Point, 0),
	}
}

// Spawn places one food item on a free cell of the room
func (fm *FoodManager) Spawn(room *entity.Room, rng *rand.Rand, excluding types.CellSet) (types.Point, error) {
	excl := types.NewCellSet(fm.foodList...)
	for p := range excluding {
		excl.Add(p)
	}

	food, err := room.RandomCellExcluding(rng, excl)
	if err != nil {
		return types.Point{}, errors.Wrap(err, "spawn food")
	}
	fm.foodList = append(fm.foodList, food)
	return food, nil
}

// EnsureCount spawns food until target items exist. Every new cell is added to
// excluding, so the caller's set reflects the room after the call.
func (fm *FoodManager) EnsureCount(target int, room *entity.Room, rng *rand.Rand, excluding types.CellSet) error {
	if excluding == nil {
		excluding = types.NewCellSet()
	}
	for len(fm.foodList) < target {
		food, err := fm.Spawn(room, rng, excluding)
		if err != nil {
			return errors.Wrapf(err, "ensure %d food, have %d", target, len(fm.foodList))
		}
		excluding.Add(food)
	}
	return nil
}

// AddFood places food on an exact cell, skipping cells that already hold food
func (fm *FoodManager) AddFood(cell types.Point) bool {
	if _, ok := fm.FoodAt(cell); ok {
		return false
	}
	fm.foodList = append(fm.foodList, cell)
	return true
}

// Consume removes the food on cell, keeping the order of the rest
func (fm *FoodManager) Consume(cell types.Point) bool {
	i, ok := fm.FoodAt(cell)
	if !ok {
		return false
	}
	fm.foodList = append(fm.foodList[:i], fm.foodList[i+1:]...)
	return true
}

// ConsumeIndex removes the food at index i
func (fm *FoodManager) ConsumeIndex(i int) (types.Point, error) {
	if i < 0 || i >= len(fm.foodList) {
		return types.Point{}, errors.Wrapf(types.ErrInvalidIndex, "index %d of %d", i, len(fm.foodList))
	}
	food := fm.foodList[i]
	fm.foodList = append(fm.foodList[:i], fm.foodList[i+1:]...)
	return food, nil
}

// FoodAt implements entity.FoodLookup
func (fm *FoodManager) FoodAt(cell types.Point) (int, bool) {
	for i, f := range fm.foodList {
		if f == cell {
			return i, true
		}
	}
	return -1, false
}

func (fm *FoodManager) Cells() []types.Point {
	cells := make([]types.Point, len(fm.foodList))
	copy(cells, fm.foodList)
	return cells
}

func (fm *FoodManager) Len() int {
	return len(fm.foodList)
}

func (fm *FoodManager) Clear() {
	fm.foodList = fm.foodList[:0]
}
