package sim

// HoleRefillTicks is how many stage heartbeats a dug hole stays open.
const HoleRefillTicks = 96

// HoleFrame is the render hint for a hole about to refill.
type HoleFrame uint8

const (
	HoleFrameNone         HoleFrame = iota
	HoleFrameClosing                // last 4 ticks
	HoleFrameAlmostClosed           // last 2 ticks
)

// Hole is a dug brick waiting to refill.
type Hole struct {
	X, Y           int
	TicksRemaining int
}

// newHole creates a hole with a full refill countdown.
func newHole(x, y int) *Hole {
	return &Hole{X: x, Y: y, TicksRemaining: HoleRefillTicks}
}

// tick advances the countdown. At zero the cell reverts to Brick and tick
// returns true so the owner can drop the hole.
func (h *Hole) tick(g *TileGrid) bool {
	if h.TicksRemaining <= 0 {
		g.Set(h.X, h.Y, Brick)
		return true
	}
	h.TicksRemaining--
	return false
}

// Frame returns which refill frame the renderer should show.
func (h *Hole) Frame() HoleFrame {
	switch {
	case h.TicksRemaining < 2:
		return HoleFrameAlmostClosed
	case h.TicksRemaining < 4:
		return HoleFrameClosing
	default:
		return HoleFrameNone
	}
}
