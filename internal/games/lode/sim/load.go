package sim

import (
	"errors"
	"fmt"
)

// ErrNoSource is returned when a level is requested without a level source.
var ErrNoSource = errors.New("sim: no level source")

// Source provides the raw tile codes of a level, one byte per cell in
// row-major order.
type Source interface {
	Codes(level int) ([]byte, error)
}

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Layout is a decoded level ready to be installed into a Stage.
// It is never modified once built.
type Layout struct {
	Level    int
	Grid     *TileGrid
	Hero     Point
	HasHero  bool
	Pursuers []Point
	Chests   int
}

// BuildLayout decodes tile codes into a layout. Spawn codes become entity
// positions and Void cells; unknown codes decode as Void. Only the first
// hero spawn is used, later ones are cleared.
func BuildLayout(level int, codes []byte) *Layout {
	l := &Layout{Level: level, Grid: NewTileGrid(Width, Height)}
	for i := 0; i < Width*Height && i < len(codes); i++ {
		x, y := i%Width, i/Width
		t := TileFromCode(codes[i])
		switch t {
		case HeroSpawn:
			if !l.HasHero {
				l.Hero = Point{x, y}
				l.HasHero = true
			}
			t = Void
		case PursuerSpawn:
			l.Pursuers = append(l.Pursuers, Point{x, y})
			t = Void
		case Chest:
			l.Chests++
		}
		l.Grid.Set(x, y, t)
	}
	return l
}

// LoadLayout reads and decodes one level from src.
func LoadLayout(src Source, level int) (*Layout, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	codes, err := src.Codes(level)
	if err != nil {
		return nil, fmt.Errorf("sim: load level %d: %w", level, err)
	}
	return BuildLayout(level, codes), nil
}

// LoadTicket identifies one load attempt. Only the most recent ticket can commit.
type LoadTicket uint64

// BeginLoad starts a load attempt and supersedes any attempt still in flight.
func (s *Stage) BeginLoad() LoadTicket {
	s.generation++
	return LoadTicket(s.generation)
}

// Commit installs a layout if t is still the current load attempt.
// A superseded ticket leaves the stage untouched and returns false.
func (s *Stage) Commit(t LoadTicket, l *Layout) bool {
	if uint64(t) != s.generation || l == nil {
		return false
	}
	s.install(l)
	return true
}

// Load reads a level synchronously and installs it. On error the stage
// keeps its current level.
func (s *Stage) Load(src Source, level int) error {
	t := s.BeginLoad()
	l, err := LoadLayout(src, level)
	if err != nil {
		return err
	}
	s.Commit(t, l)
	return nil
}

func (s *Stage) install(l *Layout) {
	s.grid = l.Grid.Clone()
	s.grid.exitEnabled = l.Chests == 0
	s.hero = nil
	if l.HasHero {
		s.hero = newHero(l.Hero.X, l.Hero.Y)
	}
	s.pursuers = make([]*Pursuer, 0, len(l.Pursuers))
	for _, p := range l.Pursuers {
		s.pursuers = append(s.pursuers, newPursuer(p.X, p.Y))
	}
	s.holes = nil
	s.level = l.Level
	s.totalChests = l.Chests
	s.heroDied = false
	s.levelCompleted = false
	s.tick = 0
	s.loaded = true
	s.notify(EventLoaded)
}
