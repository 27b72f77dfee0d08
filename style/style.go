package style

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	BackgroundColor  = lipgloss.Color("234")                                 // Dark warm grey
	TableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey border
	HlRowStyle       = lipgloss.NewStyle().Background(lipgloss.Color("235")) // Very subtle warm grey row
	HlColStyle       = lipgloss.NewStyle().Background(lipgloss.Color("234")) // Twice as subtle - barely visible
	HlCellStyle      = lipgloss.NewStyle().Background(lipgloss.Color("237")) // Slightly warmer cell
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	TitleStyle       = lipgloss.NewStyle().Bold(true)
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	UnStyle          = lipgloss.NewStyle()
)

// bucketColors colors well-known bucket keys across record kinds.
var bucketColors = map[string]string{
	"ok":        "71",
	"succeeded": "71",
	"done":      "71",
	"approved":  "71",
	"warning":   "179",
	"running":   "179",
	"planned":   "110",
	"critical":  "203",
	"failed":    "203",
	"cancelled": "246",
}

// BucketStyle returns the style for a bucket key, plain for unknown keys.
func BucketStyle(key string) lipgloss.Style {
	color, ok := bucketColors[key]
	if !ok {
		return UnStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// CellStyler returns a StyleFunc that highlights the selected cell, row, and column
// Row -1 is the header, styled only for the selected column.
func CellStyler(selectedRow, selectedCol int) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		rowMatch := row == selectedRow
		colMatch := col == selectedCol

		if row == table.HeaderRow {
			if colMatch {
				return TitleStyle
			}
			return UnStyle
		}

		if rowMatch && colMatch {
			return HlCellStyle // Brightest - the selected cell
		} else if rowMatch {
			return HlRowStyle // Medium - selected row
		} else if colMatch {
			return HlColStyle // Medium - selected column
		}
		return UnStyle
	}
}

// StyleTable applies consistent table styling for borders and separators
func StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.Border{
		Top:         "─", // Horizontal parts of separator
		Middle:      "─", // Between columns in separator
		MiddleLeft:  "─", // Left edge of separator
		MiddleRight: "─", // Right edge of separator
	}).
		BorderTop(false).    // Disable top border
		BorderBottom(false). // Disable bottom border
		BorderLeft(false).   // Disable left border
		BorderRight(false).  // Disable right border
		BorderColumn(false). // Disable column separators
		BorderStyle(TableBorderStyle)
}
