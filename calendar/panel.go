package calendar

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// SizeMsg tells the panel its display size.
type SizeMsg struct {
	Width  int
	Height int
}

// EventsMsg replaces the events shown.
type EventsMsg struct {
	Events []Event
}

// Panel shows one month of events and pages between months.
type Panel struct {
	builder Builder
	events  []Event
	year    int
	month   time.Month

	width  int
	height int
}

// NewPanel creates a panel opened on the month of now.
func NewPanel(builder Builder, now time.Time) Panel {
	return Panel{
		builder: builder,
		year:    now.Year(),
		month:   now.Month(),
	}
}

func (pnl Panel) Init() tea.Cmd {
	return nil
}

func (pnl Panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case EventsMsg:
		pnl.events = msg.Events

	case tea.KeyPressMsg:
		switch msg.String() {
		case "[", "p":
			pnl = pnl.shift(-1)
		case "]", "n":
			pnl = pnl.shift(1)
		}
	}

	return pnl, nil
}

func (pnl Panel) View() tea.View {
	return tea.NewView(pnl.Render())
}

func (pnl Panel) Render() string {
	return pnl.Grid().Render(pnl.width)
}

// Grid builds the grid for the month shown.
func (pnl Panel) Grid() Grid {
	return pnl.builder.Month(pnl.year, pnl.month, pnl.events)
}

// unexported

func (pnl Panel) shift(months int) Panel {
	first := time.Date(pnl.year, pnl.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	pnl.year = first.Year()
	pnl.month = first.Month()
	return pnl
}
