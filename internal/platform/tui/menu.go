package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/punish2048/internal/core"
	"github.com/vovakirdan/punish2048/internal/registry"
	"github.com/vovakirdan/punish2048/internal/storage"
)

// MenuItem is one selectable mode.
type MenuItem struct {
	GameID string
	Title  string
	Blurb  string
	Best   int // Highest finished score, 0 when unknown
}

// MenuModel picks a mode. It ends its program on selection, scoreboard
// or quit; the caller reads the outcome.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel lists the registered modes. A nil store hides best scores.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	modes := registry.List()
	items := make([]MenuItem, len(modes))
	for i, mode := range modes {
		items[i] = MenuItem{GameID: mode.ID, Title: mode.Title, Blurb: mode.Blurb}
		if store == nil {
			continue
		}
		if high, err := store.HighScore(mode.ID); err == nil {
			items[i].Best = high
		}
	}

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit, MenuActionBack:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(m.items)-1)
		case MenuActionSelect:
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1)
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(44)
	menuActiveCardStyle = menuCardStyle.
				BorderForeground(lipgloss.Color("212")).
				Bold(true)
)

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	blocks := []string{menuTitleStyle.Render("P U N I S H  2 0 4 8")}
	for i, item := range m.items {
		blocks = append(blocks, m.renderCard(item, i == m.cursor))
	}
	blocks = append(blocks,
		"",
		menuDimStyle.Render("up/down: move  enter: play  tab: scores  q: quit"),
	)

	body := lipgloss.JoinVertical(lipgloss.Center, blocks...)
	if m.config.ScreenW <= 0 || m.config.ScreenH <= 0 {
		return body
	}
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, body)
}

func (m MenuModel) renderCard(item MenuItem, active bool) string {
	title := item.Title
	if item.Best > 0 {
		title += menuDimStyle.Render(fmt.Sprintf("  best %d", item.Best))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, menuDimStyle.Render(item.Blurb))

	if active {
		return menuActiveCardStyle.Render(content)
	}
	return menuCardStyle.Render(content)
}

// Selected returns the chosen item, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user left the menu.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized to the latest window.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult is the outcome of RunMenu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu in its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.selected != nil:
		result.GameID = m.selected.GameID
	default:
		result.Quit = true
	}
	return result, nil
}
