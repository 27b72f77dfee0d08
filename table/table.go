package table

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2/table"

	nt "opsdeck/entity"
	"opsdeck/style"
)

const (
	headerHeight = 2
	noSelection  = -2 // below the header row
)

// TablePanel shows the view's records and tracks the selected cell
type TablePanel struct {
	selected int // Position (0 to len(records)-1) of selected record
	offset   int // First record shown
	col      int // Selected column

	width  int
	height int

	colFmts []colFmt
	records []nt.Record
	sort    nt.Sort
	table   *table.Table

	ctx    context.Context
	logger nt.Logger
}

type colFmt struct {
	width     int
	fieldName string
	heading   string
	formatter func(nt.Value) string
}

func NewTablePanel(ctx context.Context, columns []nt.Column, fields []nt.Field, lgr nt.Logger) TablePanel {

	lgt := table.New()
	style.StyleTable(lgt)

	tablePanel := TablePanel{
		table:  lgt,
		ctx:    ctx,
		logger: lgr,
	}

	return tablePanel.setColumns(columns, fields)
}

func (pnl TablePanel) Init() tea.Cmd {
	return nil
}

func (pnl TablePanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		pnl = pnl.scroll()

	case ColumnsMsg:
		pnl = pnl.setColumns(msg.Columns, msg.Fields)

	case PageMsg:
		pnl.records = msg.Records
		pnl.sort = msg.Sort
		pnl = pnl.clamp().scroll()
		return pnl, pnl.selectedCmd()

	case SelectMsg:
		pnl.selected = msg.Row
		pnl = pnl.clamp().scroll()
		return pnl, pnl.selectedCmd()

	case tea.KeyPressMsg:
		return pnl.handleKey(msg)
	}

	return pnl, nil
}

func (pnl TablePanel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	pageSize := pnl.PageSize()
	total := len(pnl.records)
	before := pnl.selected

	switch msg.String() {
	case "up", "k":
		pnl.selected--

	case "down", "j":
		pnl.selected++

	case "pgup", "ctrl+u":
		pnl.selected -= pageSize

	case "pgdown", "ctrl+d":
		pnl.selected += pageSize

	case "g", "home":
		pnl.selected = 0

	case "G", "end":
		pnl.selected = total - 1

	case "left", "h":
		if pnl.col > 0 {
			pnl.col--
		}

	case "right", "l":
		if pnl.col < len(pnl.colFmts)-1 {
			pnl.col++
		}

	case "s":
		return pnl, pnl.sortCmd()

	case "f":
		return pnl, pnl.filterCmd()

	case "K":
		return pnl, pnl.moveCmd(-1)

	case "J":
		return pnl, pnl.moveCmd(1)
	}

	pnl = pnl.clamp().scroll()
	if pnl.selected != before {
		return pnl, pnl.selectedCmd()
	}
	return pnl, nil
}

func (pnl TablePanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Render renders the visible page of records
func (pnl TablePanel) Render() string {

	pnl.table.StyleFunc(style.CellStyler(pnl.selected-pnl.offset, pnl.col))
	pnl.table.Headers(pnl.headers()...)

	pnl.table.ClearRows()
	end := min(pnl.offset+pnl.PageSize(), len(pnl.records))
	for _, rec := range pnl.records[pnl.offset:end] {
		pnl.table.Row(pnl.row(rec)...)
	}

	return pnl.table.String()
}

// RenderAll draws every record with nothing selected, for printing
func (pnl TablePanel) RenderAll(records []nt.Record, srt nt.Sort) string {

	pnl.sort = srt
	lgt := table.New()
	style.StyleTable(lgt)
	lgt.StyleFunc(style.CellStyler(noSelection, noSelection))
	lgt.Headers(pnl.headers()...)

	for _, rec := range records {
		lgt.Row(pnl.row(rec)...)
	}
	return lgt.String()
}

// PageSize returns the number of rows that fit on panel
func (pnl TablePanel) PageSize() int {
	return max(pnl.height-headerHeight, 1)
}

// Selected returns the selected row, 0-indexed
func (pnl TablePanel) Selected() int {
	return pnl.selected
}

// unexported

func (pnl TablePanel) selectedField() (string, bool) {
	if pnl.col < 0 || pnl.col >= len(pnl.colFmts) {
		return "", false
	}
	return pnl.colFmts[pnl.col].fieldName, true
}

// clamp keeps the selection on a record
func (pnl TablePanel) clamp() TablePanel {
	pnl.selected = min(pnl.selected, len(pnl.records)-1)
	pnl.selected = max(pnl.selected, 0)
	return pnl
}

// scroll adjusts offset to keep the selection visible
func (pnl TablePanel) scroll() TablePanel {
	pageSize := pnl.PageSize()
	if pnl.selected < pnl.offset {
		pnl.offset = pnl.selected
	} else if pnl.selected >= pnl.offset+pageSize {
		pnl.offset = pnl.selected - pageSize + 1
	}
	pnl.offset = max(min(pnl.offset, len(pnl.records)-pageSize), 0)
	return pnl
}

func (pnl TablePanel) headers() []string {
	headers := make([]string, len(pnl.colFmts))
	for i, cf := range pnl.colFmts {
		heading := cf.heading
		if pnl.sort.Active() && pnl.sort.Field == cf.fieldName {
			heading += " " + pnl.sort.Direction.Arrow()
		}
		headers[i] = fmt.Sprintf("%-*s", cf.width+1, truncate(heading, cf.width))
	}
	return headers
}

func (pnl TablePanel) row(rec nt.Record) []string {
	row := make([]string, len(pnl.colFmts))
	for i, cf := range pnl.colFmts {
		row[i] = truncate(cf.formatter(rec.Get(cf.fieldName)), cf.width)
	}
	return row
}

func (pnl TablePanel) setColumns(columns []nt.Column, fields []nt.Field) TablePanel {

	typeByName := map[string]nt.Kind{}
	for _, field := range fields {
		typeByName[field.Name] = field.Type
	}

	colFmts := []colFmt{}
	for _, col := range columns {
		if col.Hidden {
			continue
		}

		kind, ok := typeByName[col.Field]
		if !ok {
			pnl.logger.Info(pnl.ctx, "column has no field", "field", col.Field)
		}

		colFmts = append(colFmts, colFmt{
			width:     max(col.Width, 3),
			fieldName: col.Field,
			heading:   col.Heading(),
			formatter: makeFormatter(kind, col.Format),
		})
	}

	pnl.colFmts = colFmts
	pnl.col = min(pnl.col, max(len(colFmts)-1, 0))
	return pnl
}

// help

func makeFormatter(kind nt.Kind, format string) func(nt.Value) string {

	if kind == nt.Time {
		if format == "" {
			format = time.DateTime
		}
		return func(val nt.Value) string {
			t, err := val.Time()
			if err == nil {
				return t.Format(format)
			}
			return val.String()
		}
	}

	if format != "" && kind == nt.Number {
		return func(val nt.Value) string {
			f, err := val.Float()
			if err == nil {
				return fmt.Sprintf(format, f)
			}
			return val.String()
		}
	}

	return func(val nt.Value) string {
		return val.String()
	}
}

func truncate(in string, width int) string {

	runes := []rune(in)
	if len(runes) <= width {
		return in
	}

	truncated := string(runes[:width-1])
	ellipsis := style.MutedStyle.Render("…")
	return truncated + ellipsis
}
