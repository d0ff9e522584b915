package lode

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lode/internal/core"
)

func TestRenderBoard(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t))})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"LEVEL 001", "LIVES 5", "$ 0/1", "☻", "$$"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q", want)
		}
	}
}

func TestRenderPauseMessage(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t))})

	g.RestartCurrentAsDeath()
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), MsgTryAgain) {
		t.Error("Render() should show the pause message")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t))})

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Error("Render() should warn about a small terminal")
	}
}

func TestRenderPausedFooter(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, chestLevel(t))})

	g.Pause()
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "+/- level") {
		t.Error("paused footer should name the +/- level keys")
	}
}

func TestRenderHeroMessageStaysOnBoard(t *testing.T) {
	g := newTestGame(t, Options{Pack: testPack(t, winLevel(t))})
	g.Stage().Hero().Message = "Hi"

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	heroRow, msgRow := -1, -1
	for y := 0; y < screen.Height(); y++ {
		row := screen.Row(y)
		if strings.Contains(row, "☻") {
			heroRow = y
		}
		if strings.Contains(row, "Hi") {
			msgRow = y
		}
	}
	if heroRow < 0 || msgRow != heroRow+1 {
		t.Errorf("message row = %d, hero row = %d, expected the message below a hero on the top row", msgRow, heroRow)
	}
}
