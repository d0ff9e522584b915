package lode

import (
	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
)

// moveActions maps movement input to hero moves, in priority order.
var moveActions = []struct {
	action core.Action
	move   sim.Move
}{
	{core.ActionDigLeft, sim.MoveDigLeft},
	{core.ActionDigRight, sim.MoveDigRight},
	{core.ActionDig, sim.MoveDigTowardFacing},
	{core.ActionLeft, sim.MoveLeft},
	{core.ActionRight, sim.MoveRight},
	{core.ActionUp, sim.MoveClimbUp},
	{core.ActionDown, sim.MoveClimbDown},
	{core.ActionStop, sim.MoveNone},
}

func (g *Game) handleInput(in core.InputFrame) {
	if in.Empty() {
		return
	}
	switch {
	case in.Has(core.ActionRestart):
		g.NewRun()
		return
	case in.Has(core.ActionSuicide):
		g.RestartCurrentAsDeath()
		return
	case in.Has(core.ActionNextLevel):
		g.AdvanceLevel(1)
		return
	case in.Has(core.ActionPrevLevel):
		g.AdvanceLevel(-1)
		return
	case in.Has(core.ActionSkipForward):
		g.AdvanceLevel(10)
		return
	case in.Has(core.ActionSkipBack):
		g.AdvanceLevel(-10)
		return
	case in.Has(core.ActionNextIncomplete):
		g.JumpToNextIncompleteLevel()
		return
	case in.Has(core.ActionPause):
		if g.paused {
			g.Resume()
		} else {
			g.Pause()
		}
		return
	}

	for _, ma := range moveActions {
		if in.Has(ma.action) {
			if g.paused {
				g.Resume()
			}
			g.RequestMove(ma.move)
			return
		}
	}
}

// RequestMove queues a hero move. It is a no-op before a level is loaded.
func (g *Game) RequestMove(m sim.Move) {
	g.stage.RequestMove(m)
}

// Pause stops the simulation and saves progress.
func (g *Game) Pause() {
	if g.paused {
		return
	}
	g.paused = true
	g.saveProgress()
	g.pushStatus()
}

// Resume restarts the simulation and clears the pause message.
func (g *Game) Resume() {
	if !g.paused {
		return
	}
	g.paused = false
	g.message = ""
	g.pushStatus()
}

// LoadLevel loads level n, wrapped to the pack size. Level changes once the
// stage is committed; a failed load keeps the current one.
func (g *Game) LoadLevel(n int) {
	count := g.pack.Count()
	n = ((n % count) + count) % count
	g.message = ""
	g.log.Info("level selected", "level", n)
	g.startLoad(n)
}

// AdvanceLevel moves k levels forward or back, clamped to the pack.
func (g *Game) AdvanceLevel(k int) {
	g.LoadLevel(core.Clamp(g.level+k, 0, g.pack.Count()-1))
}

// JumpToNextIncompleteLevel loads the first level not done after the
// current one, wrapping around. When every level is done it only shows a
// message and returns false.
func (g *Game) JumpToNextIncompleteLevel() bool {
	next := g.nextIncomplete()
	if next < 0 {
		g.message = MsgAllLevelsDone
		g.paused = true
		g.pushStatus()
		return false
	}
	g.LoadLevel(next)
	return true
}

func (g *Game) nextIncomplete() int {
	for i := g.level + 1; i < len(g.statuses); i++ {
		if g.statuses[i] == statusNotDone {
			return i
		}
	}
	for i := 0; i <= g.level && i < len(g.statuses); i++ {
		if g.statuses[i] == statusNotDone {
			return i
		}
	}
	return -1
}

// RestartCurrentAsDeath ends the current stage as if the hero had died.
// A stage whose end is already resolved is left alone.
func (g *Game) RestartCurrentAsDeath() {
	if g.resolved {
		return
	}
	g.stageOver(false)
}

// ClearDoneLevels marks every level as not done.
func (g *Game) ClearDoneLevels() {
	for i := range g.statuses {
		g.statuses[i] = statusNotDone
	}
	g.saveProgress()
	g.pushStatus()
}

// NewRun records the current run and starts over at level 0 with full lives.
// Level statuses are kept.
func (g *Game) NewRun() {
	g.recordScore()
	g.lives = g.cfg.Game.Lives
	g.paused = false
	g.LoadLevel(0)
}

// DoneLevels returns how many levels are marked done.
func (g *Game) DoneLevels() int {
	n := 0
	for _, s := range g.statuses {
		if s == statusDone {
			n++
		}
	}
	return n
}
