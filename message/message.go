// Package message holds the messages panels use to talk to the model.
package message

import (
	tea "charm.land/bubbletea/v2"

	nt "opsdeck/entity"
)

// ErrorMsg contains an error
type ErrorMsg struct {
	Err error
}

// RecordsMsg delivers a full replacement of the record set
type RecordsMsg struct {
	Records []nt.Record
	Fields  []nt.Field
}

// SelectedMsg reports the selected row, 1-indexed, and its record
type SelectedMsg struct {
	Row    int
	Record nt.Record
}

// SortMsg requests a sort on field, cycling its direction
type SortMsg struct {
	Field string
}

// OpenFilterMsg asks the filter panel to add a filter on a cell's value
type OpenFilterMsg struct {
	Field string
	Value string
	Null  bool // cell is empty, filter on null
}

// SetFiltersMsg applies the filter panel's filters
type SetFiltersMsg struct {
	Filters []nt.Filter
}

// MoveMsg asks to move the record at From to To
type MoveMsg struct {
	From int
	To   int
}

// ErrorCmd returns a command delivering err
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
