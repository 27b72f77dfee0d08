package filter

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	nt "opsdeck/entity"
	"opsdeck/input"
	"opsdeck/message"
	"opsdeck/style"
)

// FilterPanel displays a modal dialog for editing filter slots
type FilterPanel struct {
	filters  []nt.Filter
	selected int       // Which filter is selected
	field    fieldType // Which field within row is selected
	value    input.TextInput

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

type fieldType int

const (
	fieldEnabled fieldType = iota
	fieldDelete
	fieldOperator
	fieldValue
)

var opList = []nt.FilterOp{
	nt.Eq,
	nt.Ne,
	nt.Choice,
	nt.Contains,
	nt.Match,
	nt.Gt,
	nt.Gte,
	nt.Lt,
	nt.Lte,
	nt.IsNull,
}

var highlight = lipgloss.NewStyle().Background(lipgloss.Color("240"))

func NewFilterPanel(ctx context.Context, lgr nt.Logger) FilterPanel {
	return FilterPanel{
		ctx:    ctx,
		logger: lgr,
	}
}

func (pnl FilterPanel) Init() tea.Cmd {
	return nil
}

func (pnl FilterPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case message.OpenFilterMsg:
		pnl = pnl.open(msg)

	case LoadMsg:
		pnl.filters = slices.Clone(msg.Filters)
		pnl.selected = 0
		pnl.field = fieldEnabled

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

	case tea.KeyPressMsg:
		return pnl.handleKey(msg)
	}

	return pnl, nil
}

// Filters returns a copy of the panel's filters
func (pnl FilterPanel) Filters() []nt.Filter {
	return slices.Clone(pnl.filters)
}

func (pnl FilterPanel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {

	if pnl.field == fieldValue && pnl.selectedOk() {
		switch msg.String() {
		case "tab", "enter", "up", "down":
		default:
			var changed bool
			pnl.value, changed = pnl.value.Update(msg)
			if changed {
				pnl.filters = slices.Clone(pnl.filters)
				pnl.filters[pnl.selected].Value = pnl.value.Value()
			}
			return pnl, nil
		}
	}

	switch msg.String() {
	case "p", "enter":
		filters := pnl.Filters()
		return pnl, func() tea.Msg {
			return message.SetFiltersMsg{Filters: filters}
		}

	case "tab":
		pnl.field = (pnl.field + 1) % (fieldValue + 1)
		pnl = pnl.syncValue()

	case "left":
		if pnl.field == fieldOperator {
			pnl = pnl.cycleOperator(-1)
		}

	case "right":
		if pnl.field == fieldOperator {
			pnl = pnl.cycleOperator(1)
		}

	case "up":
		if pnl.selected > 0 {
			pnl.selected--
			pnl.field = fieldEnabled
		}

	case "down":
		if pnl.selected < len(pnl.filters)-1 {
			pnl.selected++
			pnl.field = fieldEnabled
		}

	case "d":
		if pnl.field == fieldDelete && pnl.selectedOk() {
			pnl.filters = slices.Delete(slices.Clone(pnl.filters), pnl.selected, pnl.selected+1)
			pnl.selected = max(min(pnl.selected, len(pnl.filters)-1), 0)
		}

	case "t", "space":
		if pnl.field == fieldEnabled && pnl.selectedOk() {
			pnl.filters = slices.Clone(pnl.filters)
			pnl.filters[pnl.selected].Enabled = !pnl.filters[pnl.selected].Enabled
		}
	}

	return pnl, nil
}

// open adds an enabled filter on a cell, replacing one in the same slot
// Empty cells get a null test rather than equality with "".
func (pnl FilterPanel) open(msg message.OpenFilterMsg) FilterPanel {

	opened := nt.Filter{
		Op:      nt.Eq,
		Field:   msg.Field,
		Value:   msg.Value,
		Enabled: true,
	}
	if msg.Null {
		opened.Op = nt.IsNull
		opened.Value = nil
	}

	pnl.filters = slices.Clone(pnl.filters)
	idx := slices.IndexFunc(pnl.filters, func(f nt.Filter) bool {
		return f.SlotName() == opened.SlotName()
	})
	if idx < 0 {
		pnl.filters = append(pnl.filters, opened)
		idx = len(pnl.filters) - 1
	} else {
		pnl.filters[idx] = opened
	}

	pnl.selected = idx
	pnl.field = fieldValue
	return pnl.syncValue()
}

func (pnl FilterPanel) selectedOk() bool {
	return pnl.selected >= 0 && pnl.selected < len(pnl.filters)
}

func (pnl FilterPanel) syncValue() FilterPanel {
	if pnl.selectedOk() {
		pnl.value = input.New(valueString(pnl.filters[pnl.selected].Value), 0)
	}
	return pnl
}

func (pnl FilterPanel) cycleOperator(step int) FilterPanel {
	if !pnl.selectedOk() {
		return pnl
	}

	pnl.filters = slices.Clone(pnl.filters)
	f := &pnl.filters[pnl.selected]
	idx := slices.Index(opList, f.Op)
	if idx < 0 {
		pnl.logger.Info(pnl.ctx, "operator not editable", "op", f.Op.String(), "slot", f.SlotName())
		return pnl
	}
	f.Op = opList[(idx+step+len(opList))%len(opList)]
	return pnl
}

func (pnl FilterPanel) View() tea.View {
	return tea.NewView(pnl.Layer())
}

// Layer positions the dialog at the center of the screen
func (pnl FilterPanel) Layer() *lipgloss.Layer {

	dialog := pnl.Render()

	dialogHeight := strings.Count(dialog, "\n") + 1
	vPad := max((pnl.height-dialogHeight)/2, 0)
	hPad := max((pnl.width-dialogWidth-4)/2, 0)

	return lipgloss.NewLayer("filter", dialog).
		X(hPad).
		Y(vPad)
}

// Render draws the bordered dialog
func (pnl FilterPanel) Render() string {
	var content strings.Builder

	if len(pnl.filters) == 0 {
		content.WriteString(style.MutedStyle.Render("No filters, press f on a cell to add one."))
		content.WriteString("\n")
	} else {
		content.WriteString(style.TitleStyle.Render("Filters") + "\n")
		for i, f := range pnl.filters {
			content.WriteString(pnl.renderRow(i, f) + "\n")
		}
	}

	var helpText string
	switch pnl.field {
	case fieldEnabled:
		helpText = "t: toggle  tab: next field  ↑↓: row  enter: apply  esc: cancel"
	case fieldDelete:
		helpText = "d: delete  tab: next field  ↑↓: row  enter: apply  esc: cancel"
	case fieldOperator:
		helpText = "←→: operator  tab: next field  ↑↓: row  enter: apply  esc: cancel"
	case fieldValue:
		helpText = "type to edit  tab: next field  ↑↓: row  enter: apply  esc: cancel"
	}
	content.WriteString("\n" + style.MutedStyle.Render(helpText))

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Width(dialogWidth)

	return dialogStyle.Render(content.String())
}

const dialogWidth = 64

func (pnl FilterPanel) renderRow(idx int, f nt.Filter) string {

	isSelected := idx == pnl.selected
	mark := func(field fieldType, text string) string {
		if isSelected && pnl.field == field {
			return highlight.Render(text)
		}
		return text
	}

	enabled := "[ ]"
	if f.Enabled {
		enabled = "[x]"
	}

	val := valueString(f.Value)
	if isSelected && pnl.field == fieldValue {
		val = pnl.value.Render()
	}

	prefix := "  "
	if isSelected {
		prefix = "> "
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		prefix,
		mark(fieldEnabled, enabled),
		mark(fieldDelete, "[del]"),
		style.MutedStyle.Render(f.SlotName()+":")+" "+f.Field,
		mark(fieldOperator, f.Op.String()),
		mark(fieldValue, val),
	)
}

func valueString(val any) string {
	if val == nil {
		return ""
	}
	return fmt.Sprintf("%v", val)
}
