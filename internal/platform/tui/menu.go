package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

// tableEntry is one line of the table picker.
type tableEntry struct {
	registry.GameInfo
	best int // 0 when the table has no recorded runs
}

type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePlay
	choiceScores
	choiceQuit
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the table picker. Each table shows its record when a store
// is available.
type MenuModel struct {
	tables []tableEntry
	cursor int
	config core.RuntimeConfig
	keys   *KeyMapper
	choice menuChoice
}

// NewMenuModel lists every registered table. store may be nil.
func NewMenuModel(cfg core.RuntimeConfig, store *storage.Store) MenuModel {
	var tables []tableEntry
	for _, info := range registry.List() {
		e := tableEntry{GameInfo: info}
		if store != nil {
			e.best, _ = store.BestScore(info.ID)
		}
		tables = append(tables, e)
	}
	return MenuModel{tables: tables, config: cfg, keys: NewKeyMapper()}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		switch m.keys.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(len(m.tables)-1, 0))
		case MenuActionSelect:
			if len(m.tables) > 0 {
				m.choice = choicePlay
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.choice = choiceScores
			return m, tea.Quit
		case MenuActionQuit:
			m.choice = choiceQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.choice == choiceQuit {
		return ""
	}
	w := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render("P I N B A L L"),
		"",
		"Select a table",
		"",
	}
	for i, t := range m.tables {
		record := "no runs yet"
		if t.best > 0 {
			record = fmt.Sprintf("best %d", t.best)
		}
		name := fmt.Sprintf("  %-20s", t.Title)
		if i == m.cursor {
			name = menuCursorStyle.Render(fmt.Sprintf("> %-20s", t.Title))
		}
		lines = append(lines, name+" "+menuDimStyle.Render(record))
	}
	if t, ok := m.current(); ok && t.Description != "" {
		lines = append(lines, "", t.Description)
	}
	lines = append(lines, "", menuDimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, w))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m MenuModel) current() (tableEntry, bool) {
	if m.cursor < len(m.tables) {
		return m.tables[m.cursor], true
	}
	return tableEntry{}, false
}

// Selected returns the chosen table ID once the user pressed Enter.
func (m MenuModel) Selected() (string, bool) {
	if m.choice != choicePlay {
		return "", false
	}
	t, ok := m.current()
	return t.ID, ok
}

// Highlighted returns the table under the cursor, or "" for an empty menu.
func (m MenuModel) Highlighted() string {
	t, _ := m.current()
	return t.ID
}

func (m MenuModel) IsQuitting() bool      { return m.choice == choiceQuit }
func (m MenuModel) WantsScoreboard() bool { return m.choice == choiceScores }

// Config returns the runtime config, updated by resize events.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText pads each line of text to sit in the middle of width columns.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// MenuResult is what the picker decided. TableID is the chosen table, or
// the highlighted one when the scoreboard was requested.
type MenuResult struct {
	TableID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker in its own program.
func RunMenu(cfg core.RuntimeConfig, store *storage.Store) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(cfg, store), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch m.choice {
	case choicePlay:
		res.TableID, _ = m.Selected()
	case choiceScores:
		res.WantsScoreboard = true
		res.TableID = m.Highlighted()
	default:
		res.Quit = true
	}
	return res, nil
}
