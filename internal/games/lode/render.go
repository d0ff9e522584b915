package lode

import (
	"fmt"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/games/lode/sim"
)

// Each tile is drawn two cells wide to keep the board roughly square.
const tileW = 2

const (
	boardW = sim.Width*tileW + 2
	boardH = sim.Height + 2
	// MinScreenW and MinScreenH fit the board, the HUD and the message line.
	MinScreenW = boardW
	MinScreenH = boardH + 2
)

type glyph struct {
	runes [tileW]rune
	color core.Color
}

var tileGlyphs = map[sim.TileType]glyph{
	sim.Brick:    {[tileW]rune{'▓', '▓'}, core.ColorOrange},
	sim.Concrete: {[tileW]rune{'█', '█'}, core.ColorGray},
	sim.Ladder:   {[tileW]rune{'╟', '╢'}, core.ColorBrightWhite},
	sim.Rope:     {[tileW]rune{'─', '─'}, core.ColorYellow},
	sim.Exit:     {[tileW]rune{'╟', '╢'}, core.ColorBrightCyan},
	sim.Chest:    {[tileW]rune{'$', '$'}, core.ColorBrightYellow},
	sim.HoleFull: {[tileW]rune{'▒', '▒'}, core.ColorOrange},
}

var holeGlyphs = map[sim.HoleFrame]glyph{
	sim.HoleFrameClosing:      {[tileW]rune{'░', '░'}, core.ColorOrange},
	sim.HoleFrameAlmostClosed: {[tileW]rune{'▒', '▒'}, core.ColorOrange},
}

// Render draws the HUD, the board and the pause message.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	outer := core.CenteredRect(dst.Width(), dst.Height(), MinScreenW, MinScreenH)
	board := core.NewRect(outer.X, outer.Y+1, boardW, boardH)

	g.renderHUD(dst, outer)
	dst.DrawBox(board, core.ColorBlue)

	if !g.stage.Loaded() {
		dst.DrawTextCenteredColor(board.Y+board.H/2, "Loading...", core.ColorGray)
		g.renderFooter(dst, board.Bottom())
		return
	}

	ox, oy := board.X+1, board.Y+1
	grid := g.stage.Grid()
	for y := 0; y < sim.Height; y++ {
		for x := 0; x < sim.Width; x++ {
			if gl, ok := tileGlyphs[visibleTile(grid, x, y)]; ok {
				drawGlyph(dst, ox+x*tileW, oy+y, gl)
			}
		}
	}
	for _, h := range g.stage.Holes() {
		if gl, ok := holeGlyphs[h.Frame()]; ok {
			drawGlyph(dst, ox+h.X*tileW, oy+h.Y, gl)
		}
	}

	for _, p := range g.stage.Pursuers() {
		if p.Respawning() {
			continue
		}
		color := core.ColorBrightRed
		switch {
		case p.Trapped:
			color = core.ColorMagenta
		case p.Chests > 0:
			color = core.ColorYellow
		}
		drawCharacter(dst, ox, oy, &p.Character, '☹', color)
	}

	if hero := g.stage.Hero(); hero != nil {
		drawCharacter(dst, ox, oy, &hero.Character, '☻', core.ColorBrightGreen)
		if hero.Message != "" {
			inner := core.NewRect(ox, oy, sim.Width*tileW, sim.Height)
			msg := []rune(hero.Message)
			msg = msg[:core.Min(len(msg), inner.W)]
			mx := core.Clamp(ox+hero.X*tileW-len(msg)/2+1, inner.X, inner.Right()-len(msg))
			my := oy + hero.Y - 1
			if !inner.Contains(mx, my) {
				my = oy + hero.Y + 1
			}
			dst.DrawTextColor(mx, my, string(msg), core.ColorBrightWhite)
		}
	}

	if g.paused {
		msg := g.message
		if msg == "" {
			msg = "Paused"
		}
		y := board.Y + board.H/2
		dst.DrawRect(core.NewRect(board.X+1, y, board.W-2, 1), ' ')
		dst.DrawTextCenteredColor(y, " "+msg+" ", core.ColorBrightYellow)
	}
	g.renderFooter(dst, board.Bottom())
}

func (g *Game) renderHUD(dst *core.Screen, outer core.Rect) {
	left := fmt.Sprintf("LEVEL %03d", g.level+1)
	if title := g.pack.Title(g.level); title != "" {
		left += " " + title
	}
	if g.levelDone(g.level) {
		left += " ✓"
	}
	dst.DrawTextColor(outer.X, outer.Y, left, core.ColorBrightWhite)

	chests := ""
	if g.stage.Loaded() {
		chests = fmt.Sprintf("$ %d/%d  ", g.stage.ChestsPicked(), g.stage.TotalChests())
	}
	lives := fmt.Sprintf("LIVES %d", g.lives)
	if g.opts.Practice {
		lives = "PRACTICE"
	}
	right := fmt.Sprintf("%s%s  SCORE %d", chests, lives, g.score)
	dst.DrawTextColor(outer.Right()-len([]rune(right)), outer.Y, right, core.ColorCyan)
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	switch {
	case g.loadErr != nil:
		dst.DrawTextCenteredColor(y, "Level load failed: "+g.loadErr.Error(), core.ColorRed)
	case g.paused:
		dst.DrawTextCenteredColor(y, "Move to continue  |  P pause  |  +/- level  |  Q quit", core.ColorGray)
	}
}

// visibleTile is the appearance of a cell, except that a melting brick and
// an open exit keep their own glyphs.
func visibleTile(grid *sim.TileGrid, x, y int) sim.TileType {
	switch raw := grid.Get(x, y); {
	case raw == sim.HoleFull:
		return sim.HoleFull
	case raw == sim.Exit && grid.ExitEnabled():
		return sim.Exit
	}
	return grid.Appearance(x, y)
}

func drawGlyph(dst *core.Screen, x, y int, gl glyph) {
	for i, r := range gl.runes {
		dst.SetWithColor(x+i, y, r, gl.color)
	}
}

// drawCharacter places a character glyph, shifted by one cell when its
// sub-tile offset is past the middle of the tile.
func drawCharacter(dst *core.Screen, ox, oy int, c *sim.Character, face rune, color core.Color) {
	x := ox + c.X*tileW
	switch {
	case c.XAdjust >= 2:
		x++
	case c.XAdjust <= -2:
		x--
	}
	y := oy + c.Y
	if c.FacingLeft {
		dst.SetWithColor(x, y, '◂', color)
		dst.SetWithColor(x+1, y, face, color)
		return
	}
	dst.SetWithColor(x, y, face, color)
	dst.SetWithColor(x+1, y, '▸', color)
}
