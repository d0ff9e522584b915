package sim

import "testing"

// legend maps the characters used in test layouts to tile codes.
var legend = map[rune]TileType{
	' ': Void,
	'#': Brick,
	'@': Concrete,
	'H': Ladder,
	'-': Rope,
	'X': Trap,
	'S': Exit,
	'$': Chest,
	'0': PursuerSpawn,
	'&': HeroSpawn,
}

// codesFromRows builds a full-size code slice; missing rows and columns are Void.
func codesFromRows(t *testing.T, rows ...string) []byte {
	t.Helper()
	if len(rows) > Height {
		t.Fatalf("layout has %d rows, max %d", len(rows), Height)
	}
	codes := make([]byte, Width*Height)
	for y, row := range rows {
		if len(row) > Width {
			t.Fatalf("row %d has %d columns, max %d", y, len(row), Width)
		}
		for x, ch := range row {
			tt, ok := legend[ch]
			if !ok {
				t.Fatalf("unknown layout char %q at (%d,%d)", ch, x, y)
			}
			codes[y*Width+x] = byte(tt)
		}
	}
	return codes
}

// stageFromRows loads a test layout into a fresh stage.
func stageFromRows(t *testing.T, seed int64, rows ...string) *Stage {
	t.Helper()
	s := NewStage(seed)
	if !s.Commit(s.BeginLoad(), BuildLayout(0, codesFromRows(t, rows...))) {
		t.Fatal("Commit() = false, expected true")
	}
	return s
}

func tickN(s *Stage, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func beatN(s *Stage, p *Pursuer, n int) {
	for i := 0; i < n; i++ {
		p.heartbeat(s)
	}
}

// rowsSource serves the same layout for every level.
type rowsSource struct {
	codes []byte
	err   error
}

func (r rowsSource) Codes(int) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.codes, nil
}
