package sim

// Event tells a stage listener what changed.
type Event uint8

const (
	EventLoaded Event = iota
	EventChestTaken
	EventExitEnabled
)

// Stage owns one level in play: the grid, the hero, the pursuers, the open
// holes and the RNG. It is not safe for concurrent use; the scheduler
// serializes Tick and Commit.
type Stage struct {
	grid     *TileGrid
	hero     *Hero
	pursuers []*Pursuer
	holes    []*Hole
	rng      *Random

	level          int
	totalChests    int
	heroDied       bool
	levelCompleted bool
	loaded         bool
	tick           uint64
	generation     uint64

	listener func(Event)
}

// NewStage creates an empty stage with a seeded RNG.
func NewStage(seed int64) *Stage {
	return &Stage{
		grid: NewTileGrid(Width, Height),
		rng:  NewRandom(seed),
	}
}

// SetListener registers a callback for stage events. Pass nil to remove it.
func (s *Stage) SetListener(fn func(Event)) {
	s.listener = fn
}

func (s *Stage) notify(ev Event) {
	if s.listener != nil {
		s.listener(ev)
	}
}

// Tick advances the simulation by one base tick. The hero moves every tick;
// pursuers and then holes move on even ticks. Nothing moves before the first
// load or after the level has ended.
func (s *Stage) Tick() {
	if !s.loaded || s.Over() {
		return
	}
	even := s.tick%2 == 0
	s.tick++

	if s.hero != nil {
		s.hero.heartbeat(s)
		if s.Over() {
			return
		}
	}
	if !even {
		return
	}
	for _, p := range s.pursuers {
		p.heartbeat(s)
	}
	s.tickHoles()
}

func (s *Stage) tickHoles() {
	open := s.holes[:0]
	for _, h := range s.holes {
		if !h.tick(s.grid) {
			open = append(open, h)
		}
	}
	for i := len(open); i < len(s.holes); i++ {
		s.holes[i] = nil
	}
	s.holes = open
}

// RequestMove forwards a move request to the hero. Without a hero it does nothing.
func (s *Stage) RequestMove(m Move) {
	if s.hero != nil {
		s.hero.RequestMove(m)
	}
}

// PursuerAt reports whether a live pursuer occupies (x, y).
// Pursuers waiting to respawn do not count.
func (s *Stage) PursuerAt(x, y int) bool {
	for _, p := range s.pursuers {
		if p.X == x && p.Y == y && !p.Respawning() {
			return true
		}
	}
	return false
}

func (s *Stage) anyPursuerAt(x, y int) bool {
	for _, p := range s.pursuers {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// respawnPoint picks a random free Void cell on the first row below the top
// that has one. Falls back to (fx, fy) if the grid has no free cell.
func (s *Stage) respawnPoint(fx, fy int) (int, int) {
	var candidates []int
	for y := 1; y < s.grid.H; y++ {
		for x := 0; x < s.grid.W; x++ {
			if s.grid.Get(x, y) == Void && !s.anyPursuerAt(x, y) {
				candidates = append(candidates, x)
			}
		}
		if len(candidates) > 0 {
			x := candidates[s.rng.NextInt(len(candidates))]
			return x, y
		}
	}
	return fx, fy
}

// openHole marks a dug cell empty and starts its refill countdown.
func (s *Stage) openHole(x, y int) {
	if !s.grid.InBounds(x, y) {
		return
	}
	s.grid.Set(x, y, HoleEmpty)
	s.holes = append(s.holes, newHole(x, y))
}

func (s *Stage) enableExit() {
	if s.grid.exitEnabled {
		return
	}
	s.grid.exitEnabled = true
	s.notify(EventExitEnabled)
}

// Grid returns the live tile grid.
func (s *Stage) Grid() *TileGrid { return s.grid }

// Hero returns the hero, or nil if the level has none.
func (s *Stage) Hero() *Hero { return s.hero }

// Pursuers returns the pursuers in update order.
func (s *Stage) Pursuers() []*Pursuer { return s.pursuers }

// Holes returns the open holes.
func (s *Stage) Holes() []*Hole { return s.holes }

// Level returns the index of the loaded level.
func (s *Stage) Level() int { return s.level }

// TotalChests returns the number of chests the level started with.
func (s *Stage) TotalChests() int { return s.totalChests }

// ChestsPicked returns how many chests the hero holds.
func (s *Stage) ChestsPicked() int {
	if s.hero == nil {
		return 0
	}
	return s.hero.Chests
}

// ExitEnabled reports whether the exit ladders are usable.
func (s *Stage) ExitEnabled() bool { return s.grid.exitEnabled }

// HeroDied reports whether the hero was killed on this level.
func (s *Stage) HeroDied() bool { return s.heroDied }

// LevelCompleted reports whether the hero escaped through the top row.
func (s *Stage) LevelCompleted() bool { return s.levelCompleted }

// Over reports whether the level has ended either way.
func (s *Stage) Over() bool { return s.heroDied || s.levelCompleted }

// Loaded reports whether a level has been installed.
func (s *Stage) Loaded() bool { return s.loaded }

// Ticks returns the number of base ticks since the level was loaded.
func (s *Stage) Ticks() uint64 { return s.tick }
