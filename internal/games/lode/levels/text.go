package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
)

//go:embed packs/classic.yaml
var classicYAML []byte

// glyphs maps text level characters to tiles.
var glyphs = map[rune]sim.TileType{
	' ': sim.Void,
	'#': sim.Brick,
	'@': sim.Concrete,
	'H': sim.Ladder,
	'-': sim.Rope,
	'X': sim.Trap,
	'S': sim.Exit,
	'$': sim.Chest,
	'0': sim.PursuerSpawn,
	'&': sim.HeroSpawn,
}

// Glyph returns the text character for a tile, '?' for runtime-only tiles.
func Glyph(t sim.TileType) rune {
	for r, tt := range glyphs {
		if tt == t {
			return r
		}
	}
	return '?'
}

// TextPack is the YAML form of a level pack.
type TextPack struct {
	Name   string      `yaml:"name"`
	Levels []TextLevel `yaml:"levels"`
}

// TextLevel is one level drawn as rows of glyphs.
type TextLevel struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// Codes converts the level to one tile code per cell.
func (l TextLevel) Codes() ([]byte, error) {
	if len(l.Rows) != sim.Height {
		return nil, fmt.Errorf("%q has %d rows, expected %d: %w", l.Name, len(l.Rows), sim.Height, ErrBadLevel)
	}
	codes := make([]byte, 0, sim.Width*sim.Height)
	heroes := 0
	for y, row := range l.Rows {
		runes := []rune(row)
		if len(runes) != sim.Width {
			return nil, fmt.Errorf("%q row %d has %d columns, expected %d: %w", l.Name, y, len(runes), sim.Width, ErrBadLevel)
		}
		for x, r := range runes {
			t, ok := glyphs[r]
			if !ok {
				return nil, fmt.Errorf("%q: unknown glyph %q at (%d,%d): %w", l.Name, r, x, y, ErrBadLevel)
			}
			if t == sim.HeroSpawn {
				heroes++
			}
			codes = append(codes, byte(t))
		}
	}
	if heroes != 1 {
		return nil, fmt.Errorf("%q has %d heroes, expected 1: %w", l.Name, heroes, ErrBadLevel)
	}
	return codes, nil
}

// ParseText parses a YAML level pack and packs it into the binary format.
func ParseText(data []byte) (*Pack, error) {
	var tp TextPack
	if err := yaml.Unmarshal(data, &tp); err != nil {
		return nil, fmt.Errorf("levels: parse pack: %w", err)
	}
	if len(tp.Levels) == 0 {
		return nil, fmt.Errorf("levels: pack %q has no levels: %w", tp.Name, ErrBadLevel)
	}
	blob := make([]byte, 0, len(tp.Levels)*BlockSize)
	titles := make([]string, 0, len(tp.Levels))
	for i, l := range tp.Levels {
		codes, err := l.Codes()
		if err != nil {
			return nil, fmt.Errorf("levels: level %d: %w", i, err)
		}
		blob = append(blob, Encode(codes)...)
		titles = append(titles, l.Name)
	}
	p := NewPack(tp.Name, blob, len(tp.Levels))
	p.titles = titles
	return p, nil
}

// Render draws a level as text rows using the pack glyphs.
func Render(codes []byte) []string {
	rows := make([]string, 0, sim.Height)
	for y := 0; y < sim.Height; y++ {
		row := make([]rune, sim.Width)
		for x := 0; x < sim.Width; x++ {
			i := y*sim.Width + x
			t := sim.Void
			if i < len(codes) {
				t = sim.TileFromCode(codes[i])
			}
			row[x] = Glyph(t)
		}
		rows = append(rows, string(row))
	}
	return rows
}

var (
	classicOnce sync.Once
	classicPack *Pack
	classicErr  error
)

// Classic returns the built-in level pack.
func Classic() (*Pack, error) {
	classicOnce.Do(func() {
		classicPack, classicErr = ParseText(classicYAML)
	})
	return classicPack, classicErr
}

// Load opens the level pack at path: the built-in pack if path is empty,
// a text pack for .yaml and .yml files, a binary resource otherwise.
func Load(path string, maxLevels int) (*Pack, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		if path == "" {
			return Classic()
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("levels: cannot read %s: %w", path, err)
		}
		return ParseText(data)
	}
	return Open(path, maxLevels)
}

// Export converts every level of p to its text form.
func Export(p *Pack) (TextPack, error) {
	tp := TextPack{Name: p.Name(), Levels: make([]TextLevel, 0, p.Count())}
	for i := 0; i < p.Count(); i++ {
		codes, err := p.Codes(i)
		if err != nil {
			return TextPack{}, err
		}
		tp.Levels = append(tp.Levels, TextLevel{Name: p.Title(i), Rows: Render(codes)})
	}
	return tp, nil
}

// Marshal writes a text pack as YAML.
func (tp TextPack) Marshal() ([]byte, error) {
	return yaml.Marshal(tp)
}
