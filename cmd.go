package opsdeck

import (
	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"opsdeck/message"
)

// loadCmd gets a full replacement of the records from the store
func (m Model) loadCmd() tea.Cmd {

	ctx := m.ctx
	store := m.store

	return func() tea.Msg {
		records, err := store.Records(ctx)
		if err != nil {
			return message.ErrorMsg{Err: errors.Wrapf(err, "failed to load from %s", store.Name())}
		}

		return message.RecordsMsg{
			Records: records,
			Fields:  store.Fields(),
		}
	}
}

// relay passes msg to a panel, keeping its concrete type
func relay[P tea.Model](pnl P, msg tea.Msg) (P, tea.Cmd) {
	model, cmd := pnl.Update(msg)
	return model.(P), cmd
}
