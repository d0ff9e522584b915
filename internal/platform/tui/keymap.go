package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lode/internal/core"
)

// KeyMap holds the in-game key bindings.
type KeyMap struct {
	Left           key.Binding
	Right          key.Binding
	Up             key.Binding
	Down           key.Binding
	Stop           key.Binding
	DigLeft        key.Binding
	DigRight       key.Binding
	Dig            key.Binding
	Pause          key.Binding
	NextLevel      key.Binding
	PrevLevel      key.Binding
	SkipForward    key.Binding
	SkipBack       key.Binding
	NextIncomplete key.Binding
	Suicide        key.Binding
	Restart        key.Binding
	Screenshot     key.Binding
	Help           key.Binding
	Back           key.Binding
	Quit           key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.DigLeft, k.DigRight, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Stop},
		{k.DigLeft, k.DigRight, k.Dig, k.Pause},
		{k.NextLevel, k.PrevLevel, k.SkipForward, k.SkipBack, k.NextIncomplete},
		{k.Suicide, k.Restart, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "climb"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "descend"),
		),
		Stop: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "stop"),
		),
		DigLeft: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "dig left"),
		),
		DigRight: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dig right"),
		),
		Dig: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "dig ahead"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "prev level"),
		),
		SkipForward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "+10 levels"),
		),
		SkipBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "-10 levels"),
		),
		NextIncomplete: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "next unsolved"),
		),
		Suicide: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "give up"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new run"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// bindings pairs each game binding with the action it produces.
func (k KeyMap) bindings() []struct {
	binding key.Binding
	action  core.Action
} {
	return []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Stop, core.ActionStop},
		{k.DigLeft, core.ActionDigLeft},
		{k.DigRight, core.ActionDigRight},
		{k.Dig, core.ActionDig},
		{k.Pause, core.ActionPause},
		{k.NextLevel, core.ActionNextLevel},
		{k.PrevLevel, core.ActionPrevLevel},
		{k.SkipForward, core.ActionSkipForward},
		{k.SkipBack, core.ActionSkipBack},
		{k.NextIncomplete, core.ActionNextIncomplete},
		{k.Suicide, core.ActionSuicide},
		{k.Restart, core.ActionRestart},
		{k.Quit, core.ActionQuit},
	}
}

// ActionFor translates a key message to a game action.
// Keys with no game meaning return ActionNone.
func (k KeyMap) ActionFor(msg tea.KeyMsg) core.Action {
	for _, b := range k.bindings() {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// MenuKeyMap holds the bindings of the start menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}
