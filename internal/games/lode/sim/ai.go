package sim

import "github.com/vovakirdan/tui-lode/internal/core"

// heroLookahead is how many rows ahead a pursuer aims when the hero is
// climbing or falling in another column.
const heroLookahead = 2

// tryNextMove queues m and validates it. Returns true if a move stays queued.
func (p *Pursuer) tryNextMove(s *Stage, m Move) bool {
	p.NextMove = m
	validateNextMove(s, p)
	return p.NextMove != MoveNone
}

// computeNextMove is the chase heuristic. Vertical moves toward the hero
// come first, then the nearest ladder or drop leading toward its row, then a
// horizontal run. The queued move and a random direction are fallbacks.
func (p *Pursuer) computeNextMove(s *Stage) {
	initial := p.NextMove
	if initial != MoveClimbOut && s.hero != nil && p.chase(s, initial) {
		return
	}
	if p.tryNextMove(s, initial) {
		return
	}
	switch s.rng.NextInt(4) {
	case 0:
		p.tryNextMove(s, MoveClimbUp)
	case 1:
		p.tryNextMove(s, MoveClimbDown)
	case 2:
		p.tryNextMove(s, MoveLeft)
	case 3:
		p.tryNextMove(s, MoveRight)
	}
}

func (p *Pursuer) chase(s *Stage, initial Move) bool {
	h := s.hero
	yHero := h.Y
	if h.X != p.X {
		yHero += heroLookahead * h.YDelta
	}

	if yHero < p.Y && p.tryNextMove(s, MoveClimbUp) {
		return true
	}
	if yHero > p.Y && p.tryNextMove(s, MoveClimbDown) {
		return true
	}
	if yHero < p.Y && p.findAccess(s, MoveClimbUp) {
		return true
	}
	if yHero > p.Y && p.findAccess(s, MoveClimbDown) {
		return true
	}

	if yHero != p.Y && initial != MoveNone {
		return false
	}
	if h.X < p.X && p.tryNextMove(s, MoveLeft) {
		return true
	}
	if h.X > p.X && p.tryNextMove(s, MoveRight) {
		return true
	}
	facing := MoveRight
	if h.FacingLeft {
		facing = MoveLeft
	}
	return p.tryNextMove(s, facing)
}

// findAccess runs a probe left and right along the row to the nearest column
// where the vertical move is possible, then heads for whichever access
// leaves the shorter walk to the hero. Other pursuers block the probe.
func (p *Pursuer) findAccess(s *Stage, vertical Move) bool {
	left := p.accessDistance(s, MoveLeft, vertical)
	right := p.accessDistance(s, MoveRight, vertical)

	switch {
	case left == 0 && right == 0:
		return p.tryNextMove(s, MoveNone)
	case right == 0:
		return p.tryNextMove(s, MoveLeft)
	case left == 0:
		return p.tryNextMove(s, MoveRight)
	}

	xHero := s.hero.X
	left += core.Abs(p.X - left - xHero)
	right += core.Abs(p.X + right - xHero)
	switch {
	case left < right:
		return p.tryNextMove(s, MoveLeft)
	case left > right:
		return p.tryNextMove(s, MoveRight)
	default:
		return p.tryNextMove(s, MoveNone)
	}
}

// accessDistance returns how many tiles the probe runs in dir before the
// vertical move becomes possible, or 0 if the run is blocked first.
func (p *Pursuer) accessDistance(s *Stage, dir, vertical Move) int {
	step := 1
	if dir == MoveLeft {
		step = -1
	}
	x := p.X
	for p.isPossibleMove(s, x, p.Y, dir) {
		x += step
		if p.isPossibleMove(s, x, p.Y, vertical) {
			return core.Abs(x - p.X)
		}
	}
	return 0
}
