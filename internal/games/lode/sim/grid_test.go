package sim

import "testing"

func TestOutOfBoundsQueries(t *testing.T) {
	g := NewTileGrid(Width, Height)
	points := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {Width, 0}, {0, Height}, {-5, -5}, {Width + 3, Height + 3},
	}
	for _, p := range points {
		if got := g.Get(p.x, p.y); got != Outside {
			t.Errorf("Get(%d,%d) = %v, expected Outside", p.x, p.y, got)
		}
		if got := g.Behavior(p.x, p.y); got != Concrete {
			t.Errorf("Behavior(%d,%d) = %v, expected Concrete", p.x, p.y, got)
		}
		if got := g.Appearance(p.x, p.y); got != Void {
			t.Errorf("Appearance(%d,%d) = %v, expected Void", p.x, p.y, got)
		}
		g.Set(p.x, p.y, Brick)
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if g.Get(x, y) != Void {
				t.Fatalf("out of bounds Set wrote to (%d,%d)", x, y)
			}
		}
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		tile       TileType
		exit       bool
		behavior   TileType
		appearance TileType
	}{
		{Void, false, Void, Void},
		{Brick, false, Brick, Brick},
		{Concrete, false, Concrete, Concrete},
		{Ladder, false, Ladder, Ladder},
		{Rope, false, Rope, Rope},
		{Trap, false, Trap, Brick},
		{Exit, false, Void, Void},
		{Exit, true, Ladder, Ladder},
		{Chest, false, Void, Chest},
		{PursuerSpawn, false, Void, Void},
		{HeroSpawn, false, Void, Void},
		{HoleFull, false, Concrete, Void},
		{HoleEmpty, false, Void, Void},
	}
	for _, tt := range tests {
		t.Run(tt.tile.String(), func(t *testing.T) {
			g := NewTileGrid(3, 3)
			g.exitEnabled = tt.exit
			g.Set(1, 1, tt.tile)
			if got := g.Behavior(1, 1); got != tt.behavior {
				t.Errorf("Behavior() = %v, expected %v", got, tt.behavior)
			}
			if got := g.Appearance(1, 1); got != tt.appearance {
				t.Errorf("Appearance() = %v, expected %v", got, tt.appearance)
			}
		})
	}
}

func TestTileFromCode(t *testing.T) {
	for code := byte(0); code <= 9; code++ {
		if got := TileFromCode(code); got != TileType(code) {
			t.Errorf("TileFromCode(%d) = %v, expected %v", code, got, TileType(code))
		}
	}
	for code := byte(10); code < 16; code++ {
		if got := TileFromCode(code); got != Void {
			t.Errorf("TileFromCode(%d) = %v, expected Void", code, got)
		}
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewTileGrid(4, 4)
	g.Set(1, 1, Brick)
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("Clone() not equal to original")
	}
	c.Set(2, 2, Ladder)
	if g.Get(2, 2) != Void {
		t.Error("writing to clone changed original")
	}
	if g.Equal(c) {
		t.Error("Equal() = true after clone diverged")
	}
}
