package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pinball/internal/registry"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func storeWithRuns(t *testing.T, runs ...storage.Run) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}
	return store
}

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	menu, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return menu
}

func TestMenuShowsTableRecord(t *testing.T) {
	m := NewMenuModel(testConfig(), nil)
	if !strings.Contains(m.View(), "no runs yet") {
		t.Errorf("menu without store should show no record:\n%s", m.View())
	}

	store := storeWithRuns(t, storage.Run{GameID: "stub", Score: 750})
	m = NewMenuModel(testConfig(), store)
	view := m.View()
	if !strings.Contains(view, "Stub") || !strings.Contains(view, "best 750") {
		t.Errorf("menu should list the stub table with its record:\n%s", view)
	}
}

func TestMenuChoices(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(testConfig(), nil), tea.KeyMsg{Type: tea.KeyEnter})
	if id, ok := m.Selected(); !ok || id != "stub" {
		t.Errorf("Selected() = %q, %v", id, ok)
	}

	m = menuUpdate(t, NewMenuModel(testConfig(), nil), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() || m.Highlighted() != "stub" {
		t.Error("tab should open the scoreboard on the highlighted table")
	}
	if _, ok := m.Selected(); ok {
		t.Error("scoreboard request should not select a table")
	}

	m = menuUpdate(t, NewMenuModel(testConfig(), nil), runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m := NewMenuModel(testConfig(), nil)
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Highlighted() != "stub" {
		t.Errorf("Highlighted() = %q", m.Highlighted())
	}

	m = menuUpdate(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})
	if c := m.Config(); c.ScreenW != 90 || c.ScreenH != 30 {
		t.Errorf("Config() = %dx%d after resize", c.ScreenW, c.ScreenH)
	}
}

func TestSessionMenuScoreboardRoundTrip(t *testing.T) {
	store := storeWithRuns(t, storage.Run{GameID: "stub", Player: "carol", Score: 40})
	s := NewSessionModel(testConfig(), "session", Options{
		Store:  store,
		Logger: log.New(io.Discard),
		Player: "carol",
		Menu:   true,
	})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.board == nil || s.board.TableID() != "stub" {
		t.Fatal("tab should open the scoreboard inside the session")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.board != nil || s.quitting {
		t.Fatal("esc should return to the menu")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.gameModel == nil {
		t.Fatal("enter should start the table")
	}
	if !strings.Contains(s.View(), "stub table") {
		t.Errorf("session view should render the table:\n%s", s.View())
	}
}
