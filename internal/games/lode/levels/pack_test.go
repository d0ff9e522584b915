package levels

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
)

func TestDecodeLowNibbleFirst(t *testing.T) {
	codes := Decode([]byte{0x21, 0x93})
	expected := []byte{1, 2, 3, 9}
	for i := range expected {
		if codes[i] != expected[i] {
			t.Errorf("Decode()[%d] = %d, expected %d", i, codes[i], expected[i])
		}
	}
}

func TestEncodeMatchesDecode(t *testing.T) {
	codes := make([]byte, sim.Width*sim.Height)
	for i := range codes {
		codes[i] = byte(i % 10)
	}
	block := Encode(codes)
	if len(block) != BlockSize {
		t.Fatalf("len(Encode()) = %d, expected %d", len(block), BlockSize)
	}
	if block[0] != 0x10 {
		t.Errorf("Encode()[0] = %#x, expected 0x10", block[0])
	}
	back := Decode(block)
	for i := range codes {
		if back[i] != codes[i] {
			t.Fatalf("Decode(Encode())[%d] = %d, expected %d", i, back[i], codes[i])
		}
	}
}

func TestCodesSecondBlock(t *testing.T) {
	blob := make([]byte, 2*BlockSize)
	blob[BlockSize] = 0x97
	p := NewPack("test", blob, 0)
	if p.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", p.Count())
	}
	codes, err := p.Codes(1)
	if err != nil {
		t.Fatalf("Codes(1) error: %v", err)
	}
	if codes[0] != 7 || codes[1] != 9 {
		t.Errorf("Codes(1)[0:2] = %v, expected [7 9]", codes[:2])
	}
	if len(codes) != sim.Width*sim.Height {
		t.Errorf("len(Codes(1)) = %d, expected %d", len(codes), sim.Width*sim.Height)
	}
}

func TestCodesWrapsAtMaxLevels(t *testing.T) {
	blob := make([]byte, 2*BlockSize)
	blob[0] = 0x03
	p := NewPack("test", blob, 2)
	codes, err := p.Codes(4)
	if err != nil {
		t.Fatalf("Codes(4) error: %v", err)
	}
	if codes[0] != 3 {
		t.Errorf("Codes(4)[0] = %d, expected 3 (wrapped to block 0)", codes[0])
	}
}

func TestCodesTruncated(t *testing.T) {
	p := NewPack("short", make([]byte, BlockSize+10), DefaultMaxLevels)
	if _, err := p.Codes(0); err != nil {
		t.Errorf("Codes(0) error: %v", err)
	}
	_, err := p.Codes(1)
	if !errors.Is(err, ErrResourceTruncated) {
		t.Errorf("Codes(1) error = %v, expected ErrResourceTruncated", err)
	}
}

func TestGameLevels(t *testing.T) {
	full := NewPack("full", nil, DefaultMaxLevels)
	if full.GameLevels() != GameLevels {
		t.Errorf("GameLevels() = %d, expected %d", full.GameLevels(), GameLevels)
	}
	small := NewPack("small", make([]byte, 3*BlockSize), 0)
	if small.GameLevels() != 3 {
		t.Errorf("GameLevels() = %d, expected 3", small.GameLevels())
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.dat")
	if err := os.WriteFile(path, make([]byte, BlockSize), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Open(path, 0)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if p.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", p.Count())
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.dat"), 0); err == nil {
		t.Error("Open(missing) expected error")
	}
}

func TestParseTextErrors(t *testing.T) {
	row := strings.Repeat(" ", sim.Width)
	rows := func(mutate func([]string)) []string {
		r := make([]string, sim.Height)
		for i := range r {
			r[i] = row
		}
		r[sim.Height-1] = strings.Repeat("@", sim.Width)
		r[sim.Height-2] = "&" + row[1:]
		if mutate != nil {
			mutate(r)
		}
		return r
	}
	tests := []struct {
		name  string
		level TextLevel
	}{
		{"short", TextLevel{Name: "short", Rows: rows(nil)[:3]}},
		{"narrow", TextLevel{Name: "narrow", Rows: rows(func(r []string) { r[0] = "   " })}},
		{"glyph", TextLevel{Name: "glyph", Rows: rows(func(r []string) { r[0] = "Q" + row[1:] })}},
		{"no hero", TextLevel{Name: "nohero", Rows: rows(func(r []string) { r[sim.Height-2] = row })}},
		{"two heroes", TextLevel{Name: "two", Rows: rows(func(r []string) { r[0] = "&" + row[1:] })}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.level.Codes(); !errors.Is(err, ErrBadLevel) {
				t.Errorf("Codes() error = %v, expected ErrBadLevel", err)
			}
		})
	}

	good := TextLevel{Name: "ok", Rows: rows(nil)}
	if _, err := good.Codes(); err != nil {
		t.Errorf("Codes() on valid level error: %v", err)
	}
}

func TestParseTextEmptyPack(t *testing.T) {
	if _, err := ParseText([]byte("name: empty\nlevels: []\n")); !errors.Is(err, ErrBadLevel) {
		t.Errorf("ParseText(empty) error = %v, expected ErrBadLevel", err)
	}
	if _, err := ParseText([]byte("levels: [")); err == nil {
		t.Error("ParseText(invalid yaml) expected error")
	}
}

func TestClassicPack(t *testing.T) {
	p, err := Classic()
	if err != nil {
		t.Fatalf("Classic() error: %v", err)
	}
	if p.Count() == 0 {
		t.Fatal("Classic() has no levels")
	}
	if p.Title(0) == "" {
		t.Error("Title(0) is empty")
	}
	for i := 0; i < p.Count(); i++ {
		codes, err := p.Codes(i)
		if err != nil {
			t.Fatalf("Codes(%d) error: %v", i, err)
		}
		layout := sim.BuildLayout(i, codes)
		if !layout.HasHero {
			t.Errorf("level %d has no hero", i)
		}
		if layout.Chests == 0 {
			t.Errorf("level %d has no chests", i)
		}
	}
}

func TestRenderUsesGlyphs(t *testing.T) {
	p, err := Classic()
	if err != nil {
		t.Fatal(err)
	}
	codes, _ := p.Codes(0)
	rows := Render(codes)
	if len(rows) != sim.Height {
		t.Fatalf("len(Render()) = %d, expected %d", len(rows), sim.Height)
	}
	if strings.Count(strings.Join(rows, ""), "&") != 1 {
		t.Error("Render() should contain exactly one hero glyph")
	}
	if Glyph(sim.HoleEmpty) != '?' {
		t.Errorf("Glyph(HoleEmpty) = %q, expected '?'", Glyph(sim.HoleEmpty))
	}
}

func TestExportRoundTrip(t *testing.T) {
	p, err := Classic()
	if err != nil {
		t.Fatal(err)
	}
	tp, err := Export(p)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if len(tp.Levels) != p.Count() {
		t.Fatalf("len(Levels) = %d, expected %d", len(tp.Levels), p.Count())
	}
	data, err := tp.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	back, err := ParseText(data)
	if err != nil {
		t.Fatalf("ParseText(exported) error: %v", err)
	}
	if !bytes.Equal(back.Blob(), p.Blob()) {
		t.Error("exported pack does not parse back to the same levels")
	}
	if back.Title(1) != p.Title(1) {
		t.Errorf("Title(1) = %q, expected %q", back.Title(1), p.Title(1))
	}
}

func TestLoadByExtension(t *testing.T) {
	p, err := Classic()
	if err != nil {
		t.Fatal(err)
	}
	tp, _ := Export(p)
	data, _ := tp.Marshal()

	dir := t.TempDir()
	textPath := filepath.Join(dir, "pack.yaml")
	if err := os.WriteFile(textPath, data, 0o600); err != nil {
		t.Fatal(err)
	}
	binPath := filepath.Join(dir, "pack.dat")
	if err := os.WriteFile(binPath, p.Blob(), 0o600); err != nil {
		t.Fatal(err)
	}

	fromText, err := Load(textPath, 0)
	if err != nil {
		t.Fatalf("Load(yaml) error: %v", err)
	}
	if fromText.Count() != p.Count() {
		t.Errorf("Load(yaml).Count() = %d, expected %d", fromText.Count(), p.Count())
	}
	fromBin, err := Load(binPath, 0)
	if err != nil {
		t.Fatalf("Load(binary) error: %v", err)
	}
	if !bytes.Equal(fromBin.Blob(), p.Blob()) {
		t.Error("Load(binary) should read the blob as is")
	}
	if def, err := Load("", 0); err != nil || def != p {
		t.Errorf("Load(\"\") = %v, %v, expected the built-in pack", def, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yml"), 0); err == nil {
		t.Error("Load(missing) expected error")
	}
}
