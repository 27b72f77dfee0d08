package calendar

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"opsdeck/style"
)

const (
	minCellWidth  = 8
	cellEventRows = 3
)

// Render draws the grid in width columns.
func (grid Grid) Render(width int) string {

	cellWidth := max(width/7-1, minCellWidth)

	var out strings.Builder
	title := fmt.Sprintf("%s %d", grid.Month, grid.Year)
	out.WriteString(style.TitleStyle.Render(title) + "\n\n")

	var heads []string
	for _, wd := range grid.Weekdays() {
		heads = append(heads, pad(wd.String()[:3], cellWidth))
	}
	out.WriteString(style.MutedStyle.Render(strings.Join(heads, " ")) + "\n")

	for _, week := range grid.Weeks {
		cells := make([]string, len(week))
		for i, day := range week {
			cells[i] = renderDay(day, cellWidth)
		}
		out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, spaced(cells)...) + "\n")
	}

	return strings.TrimSuffix(out.String(), "\n")
}

func renderDay(day Day, width int) string {

	numStyle := style.UnStyle
	if day.Outside {
		numStyle = style.MutedStyle
	}

	lines := []string{numStyle.Render(pad(fmt.Sprintf("%2d", day.Date.Day()), width))}
	for i, ev := range day.Events {
		if i == cellEventRows-1 && len(day.Events) > cellEventRows {
			lines = append(lines, style.MutedStyle.Render(pad(fmt.Sprintf("+%d more", len(day.Events)-i), width)))
			break
		}
		text := pad(ev.Start.Format("15:04")+" "+ev.Title, width)
		lines = append(lines, style.BucketStyle(ev.Tag).Render(text))
	}
	for len(lines) < cellEventRows+1 {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

func spaced(cells []string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, cell := range cells {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, cell)
	}
	return out
}

// pad fits text to exactly width runes.
func pad(text string, width int) string {
	runes := []rune(text)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return text + strings.Repeat(" ", width-len(runes))
}
