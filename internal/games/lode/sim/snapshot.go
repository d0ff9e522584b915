package sim

// CharacterSnapshot is the observable state of one character.
type CharacterSnapshot struct {
	X, Y             int
	XAdjust, YAdjust int
	CurrentMove      Move
	NextMove         Move
	BusyTicks        int
	Chests           int
	Trapped          bool
}

// Snapshot captures the stage state for determinism tests and status output.
type Snapshot struct {
	Tick           uint64
	Level          int
	Hero           *CharacterSnapshot
	Pursuers       []CharacterSnapshot
	Holes          []Hole
	TotalChests    int
	ExitEnabled    bool
	HeroDied       bool
	LevelCompleted bool
}

func snapshotOf(c *Character) CharacterSnapshot {
	return CharacterSnapshot{
		X:           c.X,
		Y:           c.Y,
		XAdjust:     c.XAdjust,
		YAdjust:     c.YAdjust,
		CurrentMove: c.CurrentMove,
		NextMove:    c.NextMove,
		BusyTicks:   c.BusyTicks,
		Chests:      c.Chests,
	}
}

// Snapshot returns a copy of the current stage state.
func (s *Stage) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:           s.tick,
		Level:          s.level,
		TotalChests:    s.totalChests,
		ExitEnabled:    s.ExitEnabled(),
		HeroDied:       s.heroDied,
		LevelCompleted: s.levelCompleted,
	}
	if s.hero != nil {
		h := snapshotOf(&s.hero.Character)
		snap.Hero = &h
	}
	for _, p := range s.pursuers {
		ps := snapshotOf(&p.Character)
		ps.Trapped = p.Trapped
		snap.Pursuers = append(snap.Pursuers, ps)
	}
	for _, h := range s.holes {
		snap.Holes = append(snap.Holes, *h)
	}
	return snap
}
