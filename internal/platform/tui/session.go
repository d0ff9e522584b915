package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/registry"
	"github.com/vovakirdan/tui-lode/internal/storage"
)

// ProgressSource reads saved runs.
type ProgressSource interface {
	LoadProgress(ctx context.Context, player string) (storage.Progress, bool, error)
}

// GreetPlayer summarizes the player's saved run for the menu.
// A nil source or a failed lookup greets without progress.
func GreetPlayer(src ProgressSource, player string) string {
	if src == nil {
		return fmt.Sprintf("Welcome, %s", player)
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	p, ok, err := src.LoadProgress(ctx, player)
	if err != nil || !ok {
		return fmt.Sprintf("Welcome, %s", player)
	}
	return fmt.Sprintf("Welcome back, %s: level %d, %d lives, %d levels done",
		player, p.Level+1, p.Lives, p.Done())
}

// GameFactory creates the game chosen in the menu.
type GameFactory func(gameID string) (registry.Game, error)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	NewGame  GameFactory // defaults to registry.Create
	Scores   ScoreSource
	Greeting func() string      // menu subtitle, refreshed every time the menu opens
	Renderer *lipgloss.Renderer // nil uses the default renderer
}

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel runs the full flow: menu, then a game or the scoreboard,
// then back to the menu.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	current  screenKind
	menu     MenuModel
	game     Model
	board    ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.NewGame == nil {
		opts.NewGame = registry.Create
	}
	m := SessionModel{opts: opts, config: cfg}
	m.menu = m.newMenu("")
	return m
}

func (m SessionModel) newMenu(notice string) MenuModel {
	subtitle := notice
	if subtitle == "" && m.opts.Greeting != nil {
		subtitle = m.opts.Greeting()
	}
	return NewMenuModel(m.config, subtitle).WithRenderer(m.opts.Renderer)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.board = NewScoreboardModel(m.opts.Scores, m.config.ScreenW, m.config.ScreenH).
			WithRenderer(m.opts.Renderer)
		m.current = screenScores
		return m, m.board.Init()

	case m.menu.Selected() != nil:
		game, err := m.opts.NewGame(m.menu.Selected().ID)
		if err != nil {
			m.menu = m.newMenu("Cannot start game: " + err.Error())
			return m, nil
		}
		m.game = NewModel(game, m.config).WithBack().WithRenderer(m.opts.Renderer)
		m.current = screenGame
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.menu = m.newMenu("")
		m.current = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = board
	}

	switch {
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.board.IsGoingBack():
		m.menu = m.newMenu("")
		m.current = screenMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Close flushes the running game, if any.
func (m *SessionModel) Close() {
	if m.current == screenGame {
		m.game.closeGame()
	}
}

// RunSession runs the menu flow in the local terminal.
func RunSession(cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(SessionModel); ok {
		m.Close()
	}
	return err
}
