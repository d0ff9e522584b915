package sim

import "fmt"

const (
	// DigBusyTicks is how long the hero is locked while digging.
	DigBusyTicks = 6
	// digFillTick is the lock value at which the target brick starts melting.
	digFillTick = 4
	// MessageTicks is how long a floating message stays on screen.
	MessageTicks = 12
)

// Hero is the player-controlled character.
type Hero struct {
	Character

	Message      string
	MessageTicks int

	digX, digY int
	digStarted bool
}

func newHero(x, y int) *Hero {
	h := &Hero{}
	h.place(x, y)
	return h
}

func (h *Hero) base() *Character { return &h.Character }

// RequestMove queues a move for the next tile alignment. The exact reverse
// of the current move is committed at once.
func (h *Hero) RequestMove(m Move) {
	if m == MoveDigTowardFacing {
		m = MoveDigRight
		if h.FacingLeft {
			m = MoveDigLeft
		}
	}
	h.NextMove = m
	if m != MoveNone && m == h.CurrentMove.Reverse() {
		h.setCurrentMove(m)
	}
}

// Say shows a floating message for MessageTicks heartbeats.
func (h *Hero) Say(msg string) {
	h.Message = msg
	h.MessageTicks = MessageTicks
}

// Digging reports whether a dig is in progress and the cell being dug.
func (h *Hero) Digging() (x, y int, ok bool) {
	if !h.CurrentMove.IsDig() || h.BusyTicks == 0 {
		return 0, 0, false
	}
	return h.digX, h.digY, true
}

func (h *Hero) shouldFall(s *Stage) bool {
	return h.unsupported(s.grid) && !s.PursuerAt(h.X, h.Y+1)
}

func (h *Hero) isPossibleMove(s *Stage, x, y int, m Move) bool {
	if !m.IsDig() {
		return canMove(s.grid, x, y, m)
	}
	fx := x + 1
	if m == MoveDigLeft {
		fx = x - 1
	}
	return s.grid.Appearance(fx, y) == Void &&
		s.grid.Behavior(fx, y+1) == Brick &&
		!s.PursuerAt(fx, y)
}

func (h *Hero) setCurrentMove(m Move) {
	if !m.IsDig() {
		h.commitMove(m)
		return
	}
	h.CurrentMove = m
	h.FacingLeft = m == MoveDigLeft
	h.XDelta, h.YDelta = 0, 0
	h.BusyTicks = DigBusyTicks
	h.digX, h.digY = h.X+1, h.Y+1
	if h.FacingLeft {
		h.digX = h.X - 1
	}
	h.digStarted = true
}

func (h *Hero) computeNextMove(s *Stage) {
	validateNextMove(s, h)
}

func (h *Hero) makeNextMove(s *Stage) {
	decideMove(s, h)
	if h.CurrentMove.IsDig() {
		h.NextMove = MoveNone
	}
}

func (h *Hero) takeChest(s *Stage) bool {
	if !h.pickUpChest(s.grid) {
		return false
	}
	h.Say(fmt.Sprintf("%d/%d", h.Chests, s.totalChests))
	if h.Chests >= s.totalChests {
		s.enableExit()
	}
	s.notify(EventChestTaken)
	return true
}

func (h *Hero) canChangeTile(*Stage, int, int) bool { return true }

func (h *Hero) computeNewPosition(s *Stage) {
	integrate(s, h)
}

func (h *Hero) kill(s *Stage) {
	s.heroDied = true
}

// heartbeat runs one hero step. The dig lock counts the committing tick as
// its first tick: the target melts when the lock passes 4 and opens at 0.
func (h *Hero) heartbeat(s *Stage) {
	if s.ExitEnabled() && h.Y == 0 {
		s.levelCompleted = true
	}
	if s.PursuerAt(h.X, h.Y) {
		h.kill(s)
		return
	}
	before := h.BusyTicks
	heartbeat(s, h)
	if h.digStarted {
		h.digStarted = false
		h.BusyTicks--
	}
	if h.CurrentMove.IsDig() && h.BusyTicks != before {
		switch h.BusyTicks {
		case digFillTick:
			s.grid.Set(h.digX, h.digY, HoleFull)
		case 0:
			s.openHole(h.digX, h.digY)
		}
	}
	if h.MessageTicks > 0 {
		h.MessageTicks--
		if h.MessageTicks == 0 {
			h.Message = ""
		}
	}
}
