// Package sim implements the deterministic Lode Runner simulation: the tile
// grid, the hero and pursuer state machines, dug holes and the stage that
// steps them on one logical clock.
package sim

// TileType is the raw content of one grid cell.
// Codes 0-9 are the values stored in level data; the rest only exist at runtime.
type TileType uint8

const (
	Void TileType = iota
	Brick
	Concrete
	Ladder
	Rope
	Trap
	Exit
	Chest
	PursuerSpawn
	HeroSpawn
	Outside   // sentinel for queries beyond the grid edge
	HoleFull  // brick being dug
	HoleEmpty // dug brick, refills after HoleRefillTicks
)

// maxStoredCode is the highest tile code a level blob may contain.
const maxStoredCode = HeroSpawn

// String returns a human-readable name for the tile type.
func (t TileType) String() string {
	switch t {
	case Void:
		return "Void"
	case Brick:
		return "Brick"
	case Concrete:
		return "Concrete"
	case Ladder:
		return "Ladder"
	case Rope:
		return "Rope"
	case Trap:
		return "Trap"
	case Exit:
		return "Exit"
	case Chest:
		return "Chest"
	case PursuerSpawn:
		return "PursuerSpawn"
	case HeroSpawn:
		return "HeroSpawn"
	case Outside:
		return "Outside"
	case HoleFull:
		return "HoleFull"
	case HoleEmpty:
		return "HoleEmpty"
	default:
		return "Unknown"
	}
}

// TileFromCode converts a stored level code to a tile type.
// Unknown codes decode as Void.
func TileFromCode(code byte) TileType {
	if TileType(code) > maxStoredCode {
		return Void
	}
	return TileType(code)
}

// behaviorOf classifies a raw tile for physics.
func behaviorOf(t TileType, exitEnabled bool) TileType {
	switch t {
	case Chest, PursuerSpawn, HeroSpawn, HoleEmpty:
		return Void
	case Outside, HoleFull:
		return Concrete
	case Exit:
		if exitEnabled {
			return Ladder
		}
		return Void
	default:
		return t
	}
}

// appearanceOf classifies a raw tile for rendering.
func appearanceOf(t TileType, exitEnabled bool) TileType {
	switch t {
	case Trap:
		return Brick
	case PursuerSpawn, HeroSpawn, Outside, HoleFull, HoleEmpty:
		return Void
	case Exit:
		if exitEnabled {
			return Ladder
		}
		return Void
	default:
		return t
	}
}

// isSolid reports tiles a character cannot walk or climb into.
func isSolid(t TileType) bool {
	return t == Brick || t == Trap || t == Concrete
}
