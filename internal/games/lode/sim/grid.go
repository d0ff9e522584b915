package sim

// Default stage dimensions used by level resources.
const (
	Width  = 28
	Height = 16
)

// TileGrid is a fixed-size grid of raw tile types.
// Cells are stored in row-major order: index = y*W + x.
type TileGrid struct {
	W     int
	H     int
	cells []TileType

	// exitEnabled drives the Exit classification for both behavior and appearance.
	exitEnabled bool
}

// NewTileGrid creates a grid of the given size filled with Void.
func NewTileGrid(w, h int) *TileGrid {
	return &TileGrid{
		W:     w,
		H:     h,
		cells: make([]TileType, w*h),
	}
}

// InBounds returns true if (x, y) lies inside the grid.
func (g *TileGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the raw tile at (x, y), or Outside beyond the grid edge.
func (g *TileGrid) Get(x, y int) TileType {
	if !g.InBounds(x, y) {
		return Outside
	}
	return g.cells[y*g.W+x]
}

// Set writes a raw tile. Writes outside the grid are ignored.
// Writing HoleEmpty does not register a Hole; Stage.openHole does both.
func (g *TileGrid) Set(x, y int, t TileType) {
	if g.InBounds(x, y) {
		g.cells[y*g.W+x] = t
	}
}

// Behavior returns the physics class of the tile at (x, y).
func (g *TileGrid) Behavior(x, y int) TileType {
	return behaviorOf(g.Get(x, y), g.exitEnabled)
}

// Appearance returns the render class of the tile at (x, y).
func (g *TileGrid) Appearance(x, y int) TileType {
	return appearanceOf(g.Get(x, y), g.exitEnabled)
}

// ExitEnabled reports whether Exit tiles currently act as ladders.
func (g *TileGrid) ExitEnabled() bool {
	return g.exitEnabled
}

// Clone returns an independent copy of the grid.
func (g *TileGrid) Clone() *TileGrid {
	c := &TileGrid{W: g.W, H: g.H, exitEnabled: g.exitEnabled}
	c.cells = make([]TileType, len(g.cells))
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether two grids hold the same tiles.
func (g *TileGrid) Equal(other *TileGrid) bool {
	if other == nil || g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
