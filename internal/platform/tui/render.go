package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/nibolas/internal/core"
)

// palette is the terminal color index for each core.Color. Level files name
// these colors in their sprite sheets.
var palette = [...]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var paletteStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(palette))
	for c, code := range palette {
		styles[c] = lipgloss.NewStyle().Foreground(code)
	}
	return styles
}()

// span is a run of adjacent cells in one color.
type span struct {
	color core.Color
	text  string
}

func spans(row []core.Cell) []span {
	var out []span
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].Color == row[start].Color {
			continue
		}
		runes := make([]rune, 0, i-start)
		for _, c := range row[start:i] {
			runes = append(runes, c.Rune)
		}
		out = append(out, span{color: row[start].Color, text: string(runes)})
		start = i
	}
	return out
}

// RenderScreen converts a Screen buffer to styled terminal output. Each color
// span gets one escape sequence; uncolored spans are written as is.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, sp := range spans(s.Cells(y)) {
			if sp.color == core.ColorDefault || int(sp.color) >= len(paletteStyles) {
				sb.WriteString(sp.text)
				continue
			}
			sb.WriteString(paletteStyles[sp.color].Render(sp.text))
		}
	}
	return sb.String()
}
