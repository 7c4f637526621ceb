package core

import (
	"strings"
	"testing"
)

// rows renders the screen and splits it for line-by-line checks.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestScreenStartsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	for _, row := range rows(s) {
		if row != "      " {
			t.Errorf("row = %q, want blanks", row)
		}
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(-1, 0, 'x', ColorRed)
	s.SetColored(4, 1, 'x', ColorRed)
	s.DrawText(2, 0, "abcdef")

	if got := s.Row(0); got != "  ab" {
		t.Errorf("row 0 = %q, want %q", got, "  ab")
	}
	if c := s.GetCell(9, 9); c != blank {
		t.Errorf("GetCell out of bounds = %+v", c)
	}
	if got := s.Row(5); got != "    " {
		t.Errorf("Row out of range = %q", got)
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 2)
	s.SetColored(1, 0, '●', ColorWhite)
	s.DrawTextColored(0, 1, "GO", ColorBrightYellow)

	if c := s.GetCell(1, 0); c.Rune != '●' || c.Color != ColorWhite {
		t.Errorf("ball cell = %+v", c)
	}
	if c := s.GetCell(1, 1); c.Rune != 'O' || c.Color != ColorBrightYellow {
		t.Errorf("text cell = %+v", c)
	}

	s.Clear()
	if c := s.GetCell(1, 0); c != blank {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenCenteredText(t *testing.T) {
	tests := []struct {
		width int
		text  string
		want  string
	}{
		{10, "GO", "    GO    "},
		{11, "PAUSED", "  PAUSED   "},
		{9, "A/← B", "  A/← B  "},
	}

	for _, tc := range tests {
		s := NewScreen(tc.width, 1)
		s.DrawTextCentered(0, tc.text)
		if got := s.Row(0); got != tc.want {
			t.Errorf("DrawTextCentered(%q) on %d = %q, want %q", tc.text, tc.width, got, tc.want)
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorBrown)

	want := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	for y, row := range rows(s) {
		if row != want[y] {
			t.Errorf("row %d = %q, want %q", y, row, want[y])
		}
	}
	if c := s.GetCell(0, 0); c.Color != ColorBrown {
		t.Errorf("corner color = %v, want brown", c.Color)
	}
}

func TestScreenDrawRectClearsOverlayArea(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawHLine(0, 1, 4, '─', ColorGray)
	s.DrawRect(NewRect(1, 1, 2, 1), ' ')

	if got := s.Row(1); got != "─  ─" {
		t.Errorf("row 1 = %q", got)
	}
}

func TestScreenDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		cells          [][2]int
	}{
		{"horizontal", 0, 0, 3, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"diagonal", 0, 0, 2, 2, [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"reversed", 3, 1, 0, 1, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(5, 3)
			s.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, '▬', ColorYellow)
			for _, p := range tc.cells {
				if c := s.GetCell(p[0], p[1]); c.Rune != '▬' || c.Color != ColorYellow {
					t.Errorf("cell (%d, %d) = %+v", p[0], p[1], c)
				}
			}
		})
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "ab")

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "ab    " {
		t.Errorf("row 0 after grow = %q", got)
	}

	s.Resize(1, 1)
	if got := s.String(); got != "a" {
		t.Errorf("after shrink = %q", got)
	}
}
