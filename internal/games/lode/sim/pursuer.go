package sim

const (
	// TrapBusyTicks is how long a pursuer stays inert inside a hole.
	TrapBusyTicks = 32
	// RespawnBusyTicks is how long a killed pursuer waits at its respawn point.
	RespawnBusyTicks = 8
	retryTicks       = 1

	chestDropOdds = 6 // 1 in 6 per eligible move
	reverseOdds   = 3 // 1 in 3 when blocked by another pursuer
	wiggleTicks   = 8
)

// Pursuer is an AI-driven enemy.
//
// Trapped is read together with CurrentMove: Fall while dropping into a
// hole, None while inert inside it, ClimbOut while leaving it.
type Pursuer struct {
	Character
	Trapped bool

	spawnX, spawnY int
}

func newPursuer(x, y int) *Pursuer {
	p := &Pursuer{spawnX: x, spawnY: y}
	p.moveToTile(x, y)
	return p
}

func (p *Pursuer) base() *Character { return &p.Character }

// Respawning reports whether the pursuer is waiting to re-enter play.
func (p *Pursuer) Respawning() bool {
	return p.CurrentMove == MoveRespawn
}

func (p *Pursuer) moveToTile(x, y int) {
	p.place(x, y)
	p.FacingLeft = true
	p.Trapped = false
}

func (p *Pursuer) shouldFall(s *Stage) bool {
	if !p.unsupported(s.grid) || p.Trapped {
		return false
	}
	// resting on a pursuer trapped below
	return !(s.PursuerAt(p.X, p.Y+1) && s.grid.Get(p.X, p.Y+1) == HoleEmpty)
}

func (p *Pursuer) isPossibleMove(s *Stage, x, y int, m Move) bool {
	g := s.grid
	if m == MoveClimbOut {
		if isSolid(g.Behavior(x, y-1)) {
			return false
		}
	} else if !canMove(g, x, y, m) {
		return false
	}
	switch m {
	case MoveLeft:
		return !s.PursuerAt(x-1, y)
	case MoveRight:
		return !s.PursuerAt(x+1, y)
	case MoveClimbUp, MoveClimbOut:
		return !s.PursuerAt(x, y-1)
	case MoveClimbDown:
		return g.Get(x, y+1) != HoleEmpty && !s.PursuerAt(x, y+1)
	}
	return true
}

func (p *Pursuer) setCurrentMove(m Move) {
	switch m {
	case MoveClimbOut:
		p.CurrentMove = m
		p.XDelta, p.YDelta = 0, -1
	default:
		p.commitMove(m)
	}
}

func (p *Pursuer) takeChest(s *Stage) bool {
	if p.Chests > 0 {
		return false
	}
	return p.pickUpChest(s.grid)
}

// dropChest leaves a carried chest on the current tile: always when the
// pursuer has just become trapped, otherwise at random while resting.
func (p *Pursuer) dropChest(s *Stage) {
	g := s.grid
	if p.Chests == 0 || g.Get(p.X, p.Y) != Void {
		return
	}
	if !p.Trapped {
		if p.CurrentMove == MoveFall || !s.rng.NextBoolean(chestDropOdds) {
			return
		}
		switch g.Behavior(p.X, p.Y+1) {
		case Brick, Concrete, Ladder:
		default:
			return
		}
	}
	p.Chests--
	g.Set(p.X, p.Y, Chest)
}

func (p *Pursuer) canChangeTile(s *Stage, x, y int) bool {
	return !s.PursuerAt(x, y)
}

func (p *Pursuer) computeNewPosition(s *Stage) {
	if integrate(s, p) {
		return
	}
	if rev := p.CurrentMove.Reverse(); rev != MoveNone && s.rng.NextBoolean(reverseOdds) {
		p.setCurrentMove(rev)
	}
}

func (p *Pursuer) makeNextMove(s *Stage) {
	switch {
	case p.Trapped:
		switch {
		case p.CurrentMove == MoveFall:
			p.BusyTicks = TrapBusyTicks
			p.setCurrentMove(MoveNone)
			p.NextMove = MoveClimbOut
		case p.NextMove == MoveClimbOut:
			if p.isPossibleMove(s, p.X, p.Y, MoveClimbOut) {
				p.setCurrentMove(MoveClimbOut)
				p.NextMove = MoveNone
			} else {
				p.BusyTicks = retryTicks
				p.setCurrentMove(MoveNone)
			}
		case p.CurrentMove == MoveClimbOut:
			p.NextMove = MoveNone
			decideMove(s, p)
			p.Trapped = false
		}
	case p.CurrentMove == MoveRespawn && s.PursuerAt(p.X, p.Y):
		p.BusyTicks = retryTicks
	default:
		decideMove(s, p)
	}

	if p.Trapped {
		return
	}
	if p.CurrentMove == MoveFall && s.grid.Get(p.X, p.Y+1) == HoleEmpty {
		p.Trapped = true
		p.NextMove = MoveNone
	}
	p.dropChest(s)
}

func (p *Pursuer) kill(s *Stage) {
	x, y := s.respawnPoint(p.spawnX, p.spawnY)
	p.moveToTile(x, y)
	p.CurrentMove = MoveRespawn
	p.BusyTicks = RespawnBusyTicks
}

func (p *Pursuer) heartbeat(s *Stage) {
	if p.Trapped && p.CurrentMove == MoveNone && p.BusyTicks <= wiggleTicks {
		p.FacingLeft = p.BusyTicks/2%2 == 0
	}
	heartbeat(s, p)
}
