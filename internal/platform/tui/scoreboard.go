package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/punish2048/internal/registry"
	"github.com/vovakirdan/punish2048/internal/storage"
)

// scoreboardRows is how many finished games are loaded per view.
const scoreboardRows = 100

// scoreboardOrder selects which finished games are listed.
type scoreboardOrder int

const (
	orderTop scoreboardOrder = iota
	orderRecent
)

func (o scoreboardOrder) String() string {
	if o == orderRecent {
		return "recent"
	}
	return "top"
}

// ScoreboardKeyMap defines the scoreboard key bindings.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Order key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Order, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next mode")),
		Prev:  key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev mode")),
		Order: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "top/recent")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists finished games per mode with summary stats.
type ScoreboardModel struct {
	modes  []registry.Info
	mode   int
	order  scoreboardOrder
	store  *storage.Store
	games  []storage.GameRecord
	stats  *storage.GameStats
	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates the scoreboard, showing the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(width, height)
	m.reload()
	return m
}

func newScoreTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Forced", Width: 7},
		{Title: "Result", Width: 6},
		{Title: "When", Width: 12},
	}
	// Wide terminals get a longer date column.
	if width >= 80 {
		columns[6].Width = 17
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the selected mode's games and stats. Errors show as an
// empty board.
func (m *ScoreboardModel) reload() {
	m.games, m.stats = nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.mode].ID
		var games []storage.GameRecord
		var err error
		if m.order == orderRecent {
			games, err = m.store.RecentGames(id, scoreboardRows)
		} else {
			games, err = m.store.TopGames(id, scoreboardRows)
		}
		if err == nil {
			m.games = games
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	dateFormat := "Jan 02 15:04"
	if m.width >= 80 {
		dateFormat = "2006-01-02 15:04"
	}
	rows := make([]table.Row, len(m.games))
	for i, g := range m.games {
		result := "lost"
		if g.Won {
			result = "won"
		}
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(g.Score),
			strconv.Itoa(g.MaxTile),
			strconv.Itoa(g.Moves),
			strconv.Itoa(g.Forced),
			result,
			g.CreatedAt.Local().Format(dateFormat),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) shiftMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + delta + len(m.modes)) % len(m.modes)
	m.reload()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.shiftMode(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.shiftMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	sbTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbTabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbStatStyle      = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1).Align(lipgloss.Center)
	sbEmptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.mode {
			tabs[i] = sbActiveTabStyle.Render(mode.Title)
		} else {
			tabs[i] = sbTabStyle.Render(mode.Title)
		}
	}

	body := sbEmptyStyle.Render("No games recorded yet.\nFinish a game to set a high score!")
	if len(m.games) > 0 {
		body = m.table.View()
	}

	view := lipgloss.JoinVertical(lipgloss.Center,
		sbTitleStyle.Render(fmt.Sprintf("HIGH SCORES (%s)", m.order)),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		m.statsView(),
		sbBoxStyle.Render(body),
		helpStyle.Render(m.help.View(m.keys)),
	)
	if m.width <= 0 || m.height <= 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, view)
}

// statsView renders the mode summary as a row of small boxes.
func (m ScoreboardModel) statsView() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	stat := func(label string, value any) string {
		return sbStatStyle.Render(fmt.Sprintf("%v\n%s", value, helpStyle.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		stat("games", m.stats.GamesCount),
		stat("best", m.stats.HighScore),
		stat("avg", fmt.Sprintf("%.0f", m.stats.AvgScore)),
		stat("wins", m.stats.Wins),
		stat("tile", m.stats.BestTile),
		stat("forced", m.stats.ForcedMoves),
	)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program. It returns true
// when the user wants the menu back.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
