package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lode/internal/core"
	"github.com/vovakirdan/tui-lode/internal/registry"
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	items          []registry.GameInfo
	cursor         int
	width          int
	height         int
	subtitle       string
	keys           MenuKeyMap
	help           help.Model
	painter        *Painter
	quitting       bool
	selected       *registry.GameInfo
	openScoreboard bool
}

// NewMenuModel creates a menu listing every registered game.
// subtitle is shown under the title, typically the player's saved progress.
func NewMenuModel(cfg core.RuntimeConfig, subtitle string) MenuModel {
	h := help.New()
	h.Width = cfg.ScreenW
	return MenuModel{
		items:    registry.List(),
		width:    cfg.ScreenW,
		height:   cfg.ScreenH,
		subtitle: subtitle,
		keys:     DefaultMenuKeyMap(),
		help:     h,
		painter:  defaultPainter,
	}
}

// WithRenderer styles the menu with r instead of the default renderer.
func (m MenuModel) WithRenderer(r *lipgloss.Renderer) MenuModel {
	m.painter = NewPainter(r)
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := m.painter.style(core.ColorBrightYellow).Bold(true).Render("L O D E   R U N N E R")
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")
	if m.subtitle != "" {
		b.WriteString(centerText(m.painter.muted.Render(m.subtitle), m.width))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = m.painter.style(core.ColorBrightCyan).Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.painter.muted.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen game, or nil.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within width, measuring printable cells only.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
