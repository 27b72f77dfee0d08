package opsdeck

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"opsdeck/collection"
	"opsdeck/style"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

var helpText = map[Screen]string{
	TableScreen:    "s: sort  /: search  f: filter cell  F: filters  c: clear  r: reload  K/J: move  enter: detail  C: calendar  q: quit",
	DetailScreen:   "↑↓: scroll  esc: back",
	FilterScreen:   "enter: apply  esc: back",
	CalendarScreen: "[ ]: month  esc: back",
}

// RenderFooter renders the position, bucket counts and source of the table.
func RenderFooter(current, filtered, total int, counts collection.Counts, source string, width int) string {

	left := fmt.Sprintf("%d/%d (%d)", current, filtered, total)

	buckets := []string{}
	for _, bucket := range counts.Sorted() {
		label := fmt.Sprintf("%s %d", bucket.Key, bucket.Count)
		buckets = append(buckets, style.BucketStyle(bucket.Key).Render(label))
	}
	if len(buckets) > 0 {
		left = footerStyle.Render(left) + "  " + strings.Join(buckets, "  ")
	} else {
		left = footerStyle.Render(left)
	}

	right := footerStyle.Render(source)

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", padding) + right
}

// statusLine shows an error, the search box, or help for the screen
func (m Model) statusLine() string {

	switch {
	case m.errorString != "":
		return style.ErrorStyle.Render(m.errorString)
	case m.searching:
		return "/" + m.search.Render()
	case m.search.Value() != "" && m.screen == TableScreen:
		return footerStyle.Render("search: " + m.search.Value())
	}
	return style.MutedStyle.Render(helpText[m.screen])
}
