package manager

import (
	"snake-sim/game/entity"
	"snake-sim/game/types"
)

// CollisionManager answers occupancy questions about the room. Movement
// collisions are resolved by Snake.Step; this is used for spawning.
type CollisionManager struct {
	room *entity.Room
}

func NewCollisionManager(room *entity.Room) *CollisionManager {
	return &CollisionManager{
		room: room,
	}
}

// Occupied collects every cell held by the snake body or a food item
func (cm *CollisionManager) Occupied(snake *entity.Snake, food []types.Point) types.CellSet {
	cells := types.NewCellSet(food...)
	if snake != nil {
		for _, part := range snake.Body() {
			cells.Add(part)
		}
	}
	return cells
}

// ValidateSpawnPosition checks if pos is inside the room and free
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, occupied types.CellSet) bool {
	if !cm.room.Contains(pos) {
		return false
	}
	return !occupied.Has(pos)
}

// FreeCells is the number of room cells not in occupied
func (cm *CollisionManager) FreeCells(occupied types.CellSet) int {
	free := cm.room.Capacity()
	for p := range occupied {
		if cm.room.Contains(p) {
			free--
		}
	}
	return free
}
