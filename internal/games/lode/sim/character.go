package sim

// Sub-tile resolution. A character crosses a tile in 6 horizontal or
// 5 vertical steps; offsets stay in [-3,3] and [-2,2].
const (
	xSteps  = 6
	ySteps  = 5
	xAdjMax = 3
	yAdjMax = 2
)

// Character is the state shared by the hero and the pursuers.
type Character struct {
	X, Y             int // tile coordinates
	XAdjust, YAdjust int // sub-tile offset
	XDelta, YDelta   int // velocity sign per axis
	FacingLeft       bool
	BusyTicks        int
	CurrentMove      Move
	NextMove         Move
	Chests           int
}

// role is implemented by Hero and Pursuer. The shared heartbeat drives a
// character through these hooks so each kind only overrides what differs.
type role interface {
	base() *Character
	shouldFall(s *Stage) bool
	isPossibleMove(s *Stage, x, y int, m Move) bool
	setCurrentMove(m Move)
	computeNextMove(s *Stage)
	makeNextMove(s *Stage)
	takeChest(s *Stage) bool
	canChangeTile(s *Stage, x, y int) bool
	computeNewPosition(s *Stage)
	kill(s *Stage)
}

// Aligned reports whether the character sits exactly on its tile.
func (c *Character) Aligned() bool {
	return c.XAdjust == 0 && c.YAdjust == 0
}

// place puts the character on a tile with no motion or pending move.
func (c *Character) place(x, y int) {
	c.X, c.Y = x, y
	c.XAdjust, c.YAdjust = 0, 0
	c.XDelta, c.YDelta = 0, 0
	c.BusyTicks = 0
	c.FacingLeft = false
	c.CurrentMove = MoveNone
	c.NextMove = MoveNone
}

// commitMove sets the current move and the matching velocity.
func (c *Character) commitMove(m Move) {
	c.CurrentMove = m
	switch m {
	case MoveLeft:
		c.FacingLeft = true
		c.XDelta, c.YDelta = -1, 0
	case MoveRight:
		c.FacingLeft = false
		c.XDelta, c.YDelta = 1, 0
	case MoveClimbUp:
		c.XDelta, c.YDelta = 0, -1
	case MoveClimbDown, MoveFall:
		c.XDelta, c.YDelta = 0, 1
	default:
		c.XDelta, c.YDelta = 0, 0
	}
}

// unsupported reports whether nothing holds the character up: it is not
// inside brick, on a ladder or rope, and not standing on brick, concrete or a ladder.
func (c *Character) unsupported(g *TileGrid) bool {
	switch g.Behavior(c.X, c.Y) {
	case Brick, Ladder, Rope:
		return false
	}
	switch g.Behavior(c.X, c.Y+1) {
	case Brick, Concrete, Ladder:
		return false
	}
	return true
}

// canMove applies the terrain rules for a move starting at (x, y).
func canMove(g *TileGrid, x, y int, m Move) bool {
	switch m {
	case MoveLeft:
		return !isSolid(g.Behavior(x-1, y))
	case MoveRight:
		return !isSolid(g.Behavior(x+1, y))
	case MoveClimbUp:
		return g.Behavior(x, y) == Ladder && !isSolid(g.Behavior(x, y-1))
	case MoveClimbDown:
		// Trap is allowed: that is how a character drops through one.
		below := g.Behavior(x, y+1)
		return below != Brick && below != Concrete
	default:
		return false
	}
}

// pickUpChest takes the chest on the character's tile, if any.
func (c *Character) pickUpChest(g *TileGrid) bool {
	if g.Get(c.X, c.Y) != Chest {
		return false
	}
	c.Chests++
	g.Set(c.X, c.Y, Void)
	return true
}

// heartbeat runs one simulation step for a character.
func heartbeat(s *Stage, r role) {
	c := r.base()
	if s.grid.Behavior(c.X, c.Y) == Brick {
		r.kill(s)
		return
	}
	if c.BusyTicks > 0 {
		c.BusyTicks--
		return
	}
	if c.Aligned() {
		r.makeNextMove(s)
	}
	r.computeNewPosition(s)
}

// decideMove picks and commits the next move of an aligned character.
func decideMove(s *Stage, r role) {
	c := r.base()
	fall := r.shouldFall(s)
	if c.CurrentMove == MoveFall || !fall {
		r.takeChest(s)
	}
	if fall {
		c.NextMove = MoveFall
	} else {
		r.computeNextMove(s)
	}
	r.setCurrentMove(c.NextMove)
	if c.NextMove == MoveFall {
		c.NextMove = MoveNone
	}
}

// validateNextMove drops an impossible queued move. ClimbDown off anything
// but a ladder becomes a fall, which lets a character let go of a rope.
func validateNextMove(s *Stage, r role) {
	c := r.base()
	if !r.isPossibleMove(s, c.X, c.Y, c.NextMove) {
		c.NextMove = MoveNone
		return
	}
	if c.NextMove == MoveClimbDown && s.grid.Behavior(c.X, c.Y+1) != Ladder {
		c.NextMove = MoveFall
	}
}

// integrate advances the sub-tile offset by the current velocity.
// Crossing into another tile needs canChangeTile; a refused crossing leaves
// the character where it is and integrate returns false.
func integrate(s *Stage, r role) bool {
	c := r.base()
	x, y := c.X, c.Y
	xAdj := c.XAdjust + c.XDelta
	yAdj := c.YAdjust + c.YDelta
	if xAdj < -xAdjMax {
		xAdj += xSteps
		x--
	} else if xAdj > xAdjMax {
		xAdj -= xSteps
		x++
	}
	if yAdj < -yAdjMax {
		yAdj += ySteps
		y--
	} else if yAdj > yAdjMax {
		yAdj -= ySteps
		y++
	}
	if (x != c.X || y != c.Y) && !r.canChangeTile(s, x, y) {
		return false
	}
	c.X, c.Y = x, y
	c.XAdjust, c.YAdjust = xAdj, yAdj
	return true
}
