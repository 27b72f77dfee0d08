package table

import (
	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"opsdeck/message"
)

func (pnl TablePanel) selectedCmd() tea.Cmd {

	if len(pnl.records) == 0 {
		return nil
	}

	row := pnl.selected + 1 // 1-indexed for display
	rec := pnl.records[pnl.selected]

	return func() tea.Msg {
		return message.SelectedMsg{
			Row:    row,
			Record: rec,
		}
	}
}

func (pnl TablePanel) sortCmd() tea.Cmd {

	field, ok := pnl.selectedField()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		return message.SortMsg{Field: field}
	}
}

func (pnl TablePanel) filterCmd() tea.Cmd {

	field, ok := pnl.selectedField()
	if !ok || len(pnl.records) == 0 {
		return message.ErrorCmd(errors.New("no cell selected"))
	}
	value := pnl.records[pnl.selected].Get(field)

	return func() tea.Msg {
		return message.OpenFilterMsg{
			Field: field,
			Value: value.String(),
			Null:  value.IsNull(),
		}
	}
}

func (pnl TablePanel) moveCmd(step int) tea.Cmd {

	to := pnl.selected + step
	if len(pnl.records) == 0 || to < 0 || to >= len(pnl.records) {
		return nil
	}

	from := pnl.selected
	return func() tea.Msg {
		return message.MoveMsg{From: from, To: to}
	}
}
