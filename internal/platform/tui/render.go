package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pinball/internal/core"
)

// palette holds one style per core.Color, indexed by the color value.
var palette = [...]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          fg("1"),
	core.ColorYellow:       fg("3"),
	core.ColorWhite:        fg("7"),
	core.ColorBrightYellow: fg("11"),
	core.ColorBrightWhite:  fg("15"),
	core.ColorGray:         fg("245"),
	core.ColorBrown:        fg("130"),
}

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen turns the frame buffer into terminal text, one styled span
// per run of equally colored cells.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	var out strings.Builder
	out.Grow(w*h*2 + h)

	span := make([]rune, 0, w)
	for y := 0; y < h; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		span = span[:0]
		cur := core.ColorDefault
		for x := 0; x < w; x++ {
			c := s.GetCell(x, y)
			if len(span) > 0 && c.Color != cur {
				out.WriteString(styleFor(cur).Render(string(span)))
				span = span[:0]
			}
			cur = c.Color
			span = append(span, c.Rune)
		}
		if len(span) > 0 {
			out.WriteString(styleFor(cur).Render(string(span)))
		}
	}
	return out.String()
}
