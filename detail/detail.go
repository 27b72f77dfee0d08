package detail

import (
	"encoding/json"
	"maps"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	nt "opsdeck/entity"
	"opsdeck/style"
)

// DetailPanel shows the selected record as indented json
type DetailPanel struct {
	columns []nt.Column // For json field parsing

	record       nt.Record
	contentLines []string

	width  int
	height int
	scroll int
}

func NewDetailPanel(columns []nt.Column) DetailPanel {
	return DetailPanel{
		columns: columns,
	}
}

func (pnl DetailPanel) Init() tea.Cmd {
	return nil
}

func (pnl DetailPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case RecordMsg:
		pnl.record = msg.Record
		pnl.contentLines = render(pnl.record, pnl.columns)
		pnl.scroll = 0

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height
		pnl.scroll = min(pnl.scroll, pnl.maxScroll())

	case ColumnsMsg:
		pnl.columns = msg.Columns
		if pnl.record != nil {
			pnl.contentLines = render(pnl.record, pnl.columns)
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			pnl.scroll--
		case "down", "j":
			pnl.scroll++
		case "pgup":
			pnl.scroll -= max(pnl.height, 1)
		case "pgdown", "space":
			pnl.scroll += max(pnl.height, 1)
		case "g", "home":
			pnl.scroll = 0
		case "G", "end":
			pnl.scroll = pnl.maxScroll()
		}
		pnl.scroll = max(min(pnl.scroll, pnl.maxScroll()), 0)
	}

	return pnl, nil
}

func (pnl DetailPanel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Render shows the visible portion of the record
func (pnl DetailPanel) Render() string {
	if pnl.contentLines == nil {
		return style.MutedStyle.Render("No record selected")
	}

	visible := pnl.contentLines[pnl.scroll:]
	if pnl.height > 0 && len(visible) > pnl.height {
		visible = visible[:pnl.height]
	}

	return strings.Join(visible, "\n")
}

// unexported

func (pnl DetailPanel) maxScroll() int {
	if pnl.height <= 0 {
		return 0
	}
	return max(len(pnl.contentLines)-pnl.height, 0)
}

func render(rec nt.Record, columns []nt.Column) []string {

	if rec == nil {
		return nil
	}

	data, err := parseJsonFields(rec.Raw(), columns)
	if err != nil {
		return []string{style.ErrorStyle.Render("Error parsing json fields: " + err.Error())}
	}

	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	err = encoder.Encode(data)
	if err != nil {
		return []string{style.ErrorStyle.Render("Error encoding record: " + err.Error())}
	}

	content := strings.TrimSuffix(buf.String(), "\n")
	return strings.Split(content, "\n")
}

// parseJsonFields decodes json-escaped strings in fields whose column is marked Json,
// returning a new map.
func parseJsonFields(data map[string]any, columns []nt.Column) (map[string]any, error) {

	jsonFields := map[string]bool{}
	for _, col := range columns {
		if col.Json {
			jsonFields[col.Field] = true
		}
	}

	result := make(map[string]any, len(data))
	maps.Copy(result, data)

	for key, val := range result {
		if !jsonFields[key] || val == nil {
			continue
		}

		str, ok := val.(string)
		if !ok {
			return nil, errors.Errorf("field %q marked as json but is not a string", key)
		}
		if str == "" {
			continue
		}

		// unparsable strings are shown as-is
		var parsed any
		err := json.Unmarshal([]byte(str), &parsed)
		if err == nil {
			result[key] = parsed
		}
	}

	return result, nil
}
