package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

// helpLines is the height reserved below the game for the key help.
const helpLines = 1

// Model is the Bubble Tea model running one game session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	painter    *Painter
	allowBack  bool
	quitting   bool
	backToMenu bool
	closed     bool
	clock      uint64
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-helpLines, 0)),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		painter:    defaultPainter,
		clock:      newClock(),
	}
}

// WithRenderer paints the game with r instead of the default renderer.
func (m Model) WithRenderer(r *lipgloss.Renderer) Model {
	m.painter = NewPainter(r)
	return m
}

// WithBack lets Esc end the game and return to a menu.
func (m Model) WithBack() Model {
	m.allowBack = true
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.clock)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-helpLines, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Clock != m.clock {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.closeGame()
		m.quitting = true
		return m, tea.Quit
	case m.allowBack && key.Matches(msg, m.keys.Back):
		m.closeGame()
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if action := m.keys.ActionFor(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.clock)
}

// closeGame lets games that persist state flush it once.
func (m *Model) closeGame() {
	if m.closed {
		return
	}
	m.closed = true
	if c, ok := m.game.(io.Closer); ok {
		//nolint:errcheck // Best-effort save on exit
		c.Close()
	}
}

// saveScreenshot writes the current screen to ~/.lode/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".lode", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(screenshotText(m.screen)), 0o600)
}

// screenshotText returns the screen rows without trailing blanks.
func screenshotText(s *core.Screen) string {
	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = strings.TrimRight(s.Row(y), " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// View renders the game and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	helpView := m.help.View(m.keys)
	if h := core.Max(m.config.ScreenH-strings.Count(helpView, "\n")-1, 0); h != m.screen.Height() {
		m.screen.Resize(m.config.ScreenW, h)
	}
	m.game.Render(m.screen)
	return m.painter.Paint(m.screen) + "\n" + m.painter.muted.Render(helpView)
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays the game in the local terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.closeGame()
	}
	return err
}
