package opsdeck

import (
	"context"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"

	"opsdeck/calendar"
	"opsdeck/collection"
	"opsdeck/detail"
	nt "opsdeck/entity"
	"opsdeck/filter"
	"opsdeck/input"
	"opsdeck/message"
	"opsdeck/table"
)

const (
	footerHeight = 2
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	store   Store
	layout  *Layout
	view    collection.View
	result  collection.Result
	fields  []nt.Field
	columns []nt.Column

	screen      Screen
	row         int // Selected row, 1-indexed, 0 for none
	search      input.TextInput
	searching   bool
	errorString string

	tablePanel    table.TablePanel
	detailPanel   detail.DetailPanel
	filterPanel   filter.FilterPanel
	calendarPanel calendar.Panel

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

// NewModel creates the model over store, shown per layout.
// Records are fetched by the command returned from Init.
func NewModel(ctx context.Context, store Store, layout *Layout, search string, lgr nt.Logger) (model Model, err error) {

	view, err := layout.View(nil)
	if err != nil {
		err = errors.Wrapf(err, "failed to apply layout")
		return
	}

	fields := store.Fields()
	columns := layout.ColumnsFor(fields)

	model = Model{
		store:         store,
		layout:        layout,
		view:          view,
		fields:        fields,
		columns:       columns,
		screen:        TableScreen,
		search:        input.New(search, 0),
		tablePanel:    table.NewTablePanel(ctx, columns, fields, lgr),
		detailPanel:   detail.NewDetailPanel(columns),
		filterPanel:   filter.NewFilterPanel(ctx, lgr),
		calendarPanel: calendar.NewPanel(layout.Builder(time.Local), time.Now()),
		ctx:           ctx,
		logger:        lgr,
	}

	model.filterPanel, _ = relay(model.filterPanel, filter.LoadMsg{Filters: layout.Filters})
	model.view = model.view.SetFilter(SearchSlot, model.searchPredicate())
	return
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.RecordsMsg:
		return m.setRecords(msg.Records, msg.Fields)

	case message.SelectedMsg:
		m.row = msg.Row
		m.detailPanel, _ = relay(m.detailPanel, detail.RecordMsg{Record: msg.Record})
		return m, nil

	case message.SortMsg:
		m.view = m.view.ToggleSort(msg.Field)
		m.logger.Info(m.ctx, "sort", "field", msg.Field, "direction", m.view.Sort().Direction.String())
		return m.refresh()

	case message.OpenFilterMsg:
		m.filterPanel, _ = relay(m.filterPanel, msg)
		m.screen = FilterScreen
		return m, nil

	case message.SetFiltersMsg:
		return m.setFilters(msg.Filters)

	case message.MoveMsg:
		return m.move(msg.From, msg.To)

	case message.ErrorMsg:
		m.logger.Error(m.ctx, "error msg", msg.Err)
		m.errorString = msg.Err.Error()
		return m, nil

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyPressMsg:
		m.errorString = ""
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) View() tea.View {
	if m.width == 0 {
		return tea.NewView("Loading...")
	}

	var screenContent string
	switch m.screen {
	case DetailScreen:
		screenContent = m.detailPanel.Render()
	case CalendarScreen:
		screenContent = m.calendarPanel.Render()
	default:
		screenContent = m.tablePanel.Render()
	}

	footer := RenderFooter(m.row, len(m.result.Records), m.result.Total, m.counts(), m.store.Name(), m.width)
	footerLayer := lipgloss.NewLayer("footer", footer+"\n"+m.statusLine()).Y(m.height - footerHeight)

	canvas := lipgloss.NewCanvas(m.width, m.height)
	canvas.Compose(lipgloss.NewLayer("screen", screenContent))
	if m.screen == FilterScreen {
		canvas.Compose(m.filterPanel.Layer())
	}
	canvas.Compose(footerLayer)

	view := tea.NewView(canvas)
	view.AltScreen = true
	return view
}

// Result returns the records as currently shown.
func (m Model) Result() collection.Result {
	return m.result
}

// counts returns bucket counts, none when the layout does not bucket
func (m Model) counts() collection.Counts {
	if m.layout.Buckets == nil {
		return nil
	}
	return m.result.Counts
}

// Screen returns the screen currently shown.
func (m Model) Screen() Screen {
	return m.screen
}

// unexported

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	var cmd tea.Cmd
	switch m.screen {
	case DetailScreen:
		if key == "esc" || key == "left" || key == "h" {
			m.screen = TableScreen
			return m, nil
		}
		m.detailPanel, cmd = relay(m.detailPanel, msg)
		return m, cmd

	case FilterScreen:
		if key == "esc" {
			m.screen = TableScreen
			return m, nil
		}
		m.filterPanel, cmd = relay(m.filterPanel, msg)
		return m, cmd

	case CalendarScreen:
		if key == "esc" || key == "C" {
			m.screen = TableScreen
			return m, nil
		}
		m.calendarPanel, cmd = relay(m.calendarPanel, msg)
		return m, cmd
	}

	switch key {
	case "q", "esc":
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, nil

	case "c":
		return m.clearFilters()

	case "r":
		return m, m.loadCmd()

	case "enter":
		if len(m.result.Records) > 0 {
			m.screen = DetailScreen
		}
		return m, nil

	case "F":
		m.screen = FilterScreen
		return m, nil

	case "C":
		if m.layout.Calendar == nil {
			return m, message.ErrorCmd(errors.New("no calendar in layout"))
		}
		m.screen = CalendarScreen
		return m, nil
	}

	m.tablePanel, cmd = relay(m.tablePanel, msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	switch msg.String() {
	case "enter":
		m.searching = false
		return m, nil

	case "esc":
		m.searching = false
		m.search = input.New("", 0)
	default:
		var changed bool
		m.search, changed = m.search.Update(msg)
		if !changed {
			return m, nil
		}
	}

	m.view = m.view.SetFilter(SearchSlot, m.searchPredicate())
	return m.refresh()
}

func (m Model) searchPredicate() collection.Predicate {
	return collection.Search(m.search.Value(), m.layout.SearchFields(m.columns)...)
}

// setRecords replaces the records, keeping sort and filters
func (m Model) setRecords(records []nt.Record, fields []nt.Field) (Model, tea.Cmd) {

	m.logger.Info(m.ctx, "records loaded", "count", len(records), "source", m.store.Name())

	if !slices.Equal(fields, m.fields) {
		m.fields = fields
		m.columns = m.layout.ColumnsFor(fields)
		m.tablePanel, _ = relay(m.tablePanel, table.ColumnsMsg{Columns: m.columns, Fields: fields})
		m.detailPanel, _ = relay(m.detailPanel, detail.ColumnsMsg{Columns: m.columns})
		m.view = m.view.SetFilter(SearchSlot, m.searchPredicate())
	}

	m.view = m.view.WithRecords(records)
	return m.refresh()
}

func (m Model) setFilters(filters []nt.Filter) (Model, tea.Cmd) {

	slots, err := collection.CompileSlots(filters)
	if err != nil {
		return m, message.ErrorCmd(err)
	}
	if _, ok := slots[SearchSlot]; ok {
		return m, message.ErrorCmd(errors.Errorf("slot %q is reserved for search", SearchSlot))
	}

	m.view = m.view.WithSlots(slots.With(SearchSlot, m.searchPredicate()))
	m.screen = TableScreen
	m.logger.Info(m.ctx, "filters applied", "slots", m.view.Slots().Active())

	return m.refresh()
}

func (m Model) clearFilters() (Model, tea.Cmd) {

	m.view = m.view.ClearFilters()
	m.search = input.New("", 0)
	m.filterPanel, _ = relay(m.filterPanel, filter.LoadMsg{})

	return m.refresh()
}

// move reorders records, only while shown in load order
func (m Model) move(from, to int) (Model, tea.Cmd) {

	if m.view.Sort().Active() || len(m.view.Slots().Active()) > 0 {
		return m, message.ErrorCmd(errors.New("clear sort and filters to reorder"))
	}

	moved, err := collection.Move(m.view.Records(), from, to)
	if err != nil {
		return m, message.ErrorCmd(err)
	}
	if m.layout.Reorder != "" {
		moved = collection.Renumber(moved, m.layout.Reorder)
	}
	m.logger.Info(m.ctx, "moved record", "from", from, "to", to)

	m.view = m.view.WithRecords(moved)
	m, cmd := m.refresh()

	var selectCmd tea.Cmd
	m.tablePanel, selectCmd = relay(m.tablePanel, table.SelectMsg{Row: to})
	return m, tea.Sequence(cmd, selectCmd)
}

// refresh recomputes the result and passes it to the panels
func (m Model) refresh() (Model, tea.Cmd) {

	result, err := m.view.Result()
	if err != nil {
		return m, message.ErrorCmd(err)
	}
	if result.UnknownSort {
		m.logger.Info(m.ctx, "sort field not found in records", "field", result.Sort.Field)
	}
	if len(result.UnknownSlots) > 0 {
		m.logger.Info(m.ctx, "filter fields not found in records, slots skipped", "slots", result.UnknownSlots)
	}

	m.result = result
	if len(result.Records) == 0 {
		m.row = 0
	}

	if m.layout.Calendar != nil {
		events, skipped := m.layout.Events(result.Records)
		if skipped > 0 {
			m.logger.Info(m.ctx, "records left off calendar", "skipped", skipped)
		}
		m.calendarPanel, _ = relay(m.calendarPanel, calendar.EventsMsg{Events: events})
	}

	var cmd tea.Cmd
	m.tablePanel, cmd = relay(m.tablePanel, table.PageMsg{Records: result.Records, Sort: result.Sort})
	return m, cmd
}

func (m Model) resize(width, height int) Model {

	m.width = width
	m.height = height
	screenHeight := max(height-footerHeight, 0)

	m.tablePanel, _ = relay(m.tablePanel, table.SizeMsg{Width: width, Height: screenHeight})
	m.detailPanel, _ = relay(m.detailPanel, detail.SizeMsg{Width: width, Height: screenHeight})
	m.filterPanel, _ = relay(m.filterPanel, filter.SizeMsg{Width: width, Height: screenHeight})
	m.calendarPanel, _ = relay(m.calendarPanel, calendar.SizeMsg{Width: width, Height: screenHeight})
	return m
}
