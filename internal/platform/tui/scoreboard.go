package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

const boardRunLimit = 50

// boardView selects which slice of a table's run history is listed.
type boardView int

const (
	viewBest boardView = iota
	viewRecent
	viewMine
	viewCount
)

func (v boardView) String() string {
	switch v {
	case viewRecent:
		return "Recent"
	case viewMine:
		return "Mine"
	}
	return "Best"
}

type boardKeys struct {
	Scroll key.Binding
	Table  key.Binding
	View   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Table, k.View, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultBoardKeys = boardKeys{
	Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
	Table:  key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "table")),
	View:   key.NewBinding(key.WithKeys("tab", "v"), key.WithHelp("tab", "best/recent/mine")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	boardFrame     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardActiveTab = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardTab       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel browses recorded runs: the best runs on a table, the
// latest ones, or the session player's own history.
type ScoreboardModel struct {
	store  *storage.Store
	player string
	tables []registry.GameInfo
	at     int
	view   boardView

	runs  []storage.Run
	stats storage.TableStats
	err   error

	grid table.Model
	help help.Model

	width, height int
	back, quit    bool
}

// NewScoreboardModel opens the board on tableID, or on the first table
// when tableID is unknown. player picks the history shown by the Mine view.
func NewScoreboardModel(store *storage.Store, player, tableID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		player: player,
		tables: registry.List(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, t := range m.tables {
		if t.ID == tableID {
			m.at = i
		}
	}
	m.grid = newRunGrid(width, height)
	m.reload()
	return m
}

func newRunGrid(width, height int) table.Model {
	playerW := 12
	if width > 80 {
		playerW = 20
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 9},
			{Title: "Player", Width: playerW},
			{Title: "Frames", Width: 9},
			{Title: "Step", Width: 8},
			{Title: "Played", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-12, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// TableID is the table currently shown.
func (m ScoreboardModel) TableID() string {
	if len(m.tables) == 0 {
		return ""
	}
	return m.tables[m.at].ID
}

func (m *ScoreboardModel) reload() {
	m.runs, m.stats, m.err = nil, storage.TableStats{}, nil
	id := m.TableID()
	if m.store != nil && id != "" {
		switch m.view {
		case viewBest:
			m.runs, m.err = m.store.TopRuns(id, boardRunLimit)
		case viewRecent:
			m.runs, m.err = m.store.RecentRuns(id, boardRunLimit)
		case viewMine:
			m.runs, m.err = m.store.PlayerRuns(id, m.player, boardRunLimit)
		}
		if m.err == nil {
			m.stats, m.err = m.store.Stats(id)
		}
	}

	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Score),
			playerName(r.Player),
			fmt.Sprint(r.Frames),
			r.Timestep,
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.grid.SetRows(rows)
	m.grid.GotoTop()
}

func playerName(p string) string {
	if p == "" {
		return "local"
	}
	return p
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.grid = newRunGrid(m.width, m.height)
		m.reload()
		return m, nil

	case tea.KeyMsg:
		k := defaultBoardKeys
		switch {
		case key.Matches(msg, k.Quit):
			m.quit = true
			return m, tea.Quit
		case key.Matches(msg, k.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, k.View):
			m.view = (m.view + 1) % viewCount
			m.reload()
			return m, nil
		case key.Matches(msg, k.Table):
			if n := len(m.tables); n > 0 {
				step := 1
				if s := msg.String(); s == "left" || s == "h" {
					step = n - 1
				}
				m.at = (m.at + step) % n
				m.reload()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quit || m.back {
		return ""
	}

	title := "RUNS"
	if len(m.tables) > 0 {
		title += " - " + m.tables[m.at].Title
	}

	tabs := make([]string, 0, viewCount)
	for v := range viewCount {
		label := v.String()
		if v == viewMine {
			label += " (" + playerName(m.player) + ")"
		}
		if v == m.view {
			tabs = append(tabs, boardActiveTab.Render(label))
		} else {
			tabs = append(tabs, boardTab.Render(label))
		}
	}

	var body string
	switch {
	case m.err != nil:
		body = boardDim.Render("Cannot read runs: " + m.err.Error())
	case len(m.runs) == 0:
		body = boardDim.Italic(true).Padding(1, 4).Render("No runs recorded yet.")
	default:
		body = m.grid.View()
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardFrame.Render(body), m.width))
	b.WriteString("\n")
	if m.stats.Runs > 0 {
		b.WriteString(centerText(statsLine(m.stats), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(boardDim.Render(m.help.View(defaultBoardKeys)), m.width))
	return b.String()
}

func statsLine(s storage.TableStats) string {
	return fmt.Sprintf("%d runs  best %d  avg %.0f  %d frames  last %s",
		s.Runs, s.BestScore, s.AvgScore, s.TotalFrames, s.LastPlayed.Format("Jan 02 15:04"))
}

func (m ScoreboardModel) IsGoingBack() bool { return m.back }
func (m ScoreboardModel) IsQuitting() bool  { return m.quit }

// RunScoreboard shows the board in its own program and reports whether the
// user asked to go back to the menu.
func RunScoreboard(store *storage.Store, player, tableID string, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(
		NewScoreboardModel(store, player, tableID, width, height),
		tea.WithAltScreen(),
	).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
