package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lode/internal/core"
)

func TestActionFor(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", keyRunes("a"), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"s", keyRunes("s"), core.ActionDown},
		{"stop", keyRunes("."), core.ActionStop},
		{"dig left", keyRunes("z"), core.ActionDigLeft},
		{"dig right", keyRunes("x"), core.ActionDigRight},
		{"dig ahead", tea.KeyMsg{Type: tea.KeySpace}, core.ActionDig},
		{"pause", keyRunes("p"), core.ActionPause},
		{"next level", keyRunes("+"), core.ActionNextLevel},
		{"prev level", keyRunes("-"), core.ActionPrevLevel},
		{"skip forward", keyRunes("]"), core.ActionSkipForward},
		{"skip back", keyRunes("["), core.ActionSkipBack},
		{"next incomplete", keyRunes("i"), core.ActionNextIncomplete},
		{"suicide", keyRunes("k"), core.ActionSuicide},
		{"restart", keyRunes("r"), core.ActionRestart},
		{"quit", keyRunes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", keyRunes("y"), core.ActionNone},
		{"help is not a game action", keyRunes("?"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.ActionFor(tt.msg); got != tt.want {
				t.Errorf("ActionFor(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapHelpCoversBindings(t *testing.T) {
	keys := DefaultKeyMap()
	seen := 0
	for _, col := range keys.FullHelp() {
		for _, b := range col {
			if b.Help().Key == "" || b.Help().Desc == "" {
				t.Errorf("binding %v has no help text", b.Keys())
			}
			seen++
		}
	}
	// game actions plus screenshot and help, which the model handles itself
	if expected := len(keys.bindings()) + 2; seen != expected {
		t.Errorf("FullHelp() lists %d bindings, expected %d", seen, expected)
	}
}
