package opsdeck

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	nt "opsdeck/entity"
	"opsdeck/message"
)

type fakeStore struct {
	records []nt.Record
	fields  []nt.Field
	err     error
}

func (fs *fakeStore) Name() string                                 { return "fake" }
func (fs *fakeStore) Load(ctx context.Context, path string) error { return nil }
func (fs *fakeStore) Fields() []nt.Field                           { return fs.fields }
func (fs *fakeStore) Records(ctx context.Context) ([]nt.Record, error) {
	return fs.records, fs.err
}

type recLogger struct {
	infos  *[]string
	errors *[]error
}

func newRecLogger() recLogger {
	return recLogger{infos: &[]string{}, errors: &[]error{}}
}

func (lgr recLogger) Info(ctx context.Context, msg string, kv ...any) {
	*lgr.infos = append(*lgr.infos, msg)
}

func (lgr recLogger) Error(ctx context.Context, msg string, err error, kv ...any) {
	*lgr.errors = append(*lgr.errors, err)
}

func (lgr recLogger) WithFields(ctx context.Context, kv ...any) context.Context {
	return ctx
}

func shift(name, team string, tier int, priority any) nt.Record {
	return nt.Record{
		"name":     nt.Value{Raw: name},
		"team":     nt.Value{Raw: team},
		"tier":     nt.Value{Raw: tier},
		"priority": nt.Value{Raw: priority},
	}
}

func roster() *fakeStore {
	return &fakeStore{
		records: []nt.Record{
			shift("alice", "dba", 1, int64(1)),
			shift("bob", "infra", 2, int64(2)),
			shift("carol", "dba", 3, int64(3)),
			shift("dave", "infra", 1, int64(4)),
		},
		fields: []nt.Field{
			{Name: "name", Type: nt.String},
			{Name: "team", Type: nt.String},
			{Name: "tier", Type: nt.Number},
			{Name: "priority", Type: nt.Number},
		},
	}
}

func names(records []nt.Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Get("name").String()
	}
	return out
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	return model.(Model), cmd
}

func keys(t *testing.T, m Model, texts ...string) Model {
	t.Helper()
	for _, text := range texts {
		var msg tea.KeyPressMsg
		switch text {
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		default:
			msg = tea.KeyPressMsg{Code: []rune(text)[0], Text: text}
		}
		m, _ = step(t, m, msg)
	}
	return m
}

func loaded(t *testing.T, store Store, layout *Layout, lgr recLogger) Model {
	t.Helper()

	m, err := NewModel(context.Background(), store, layout, "", lgr)
	require.NoError(t, err)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})
	m, _ = step(t, m, m.Init()())
	return m
}

func TestModel_LoadAndSort(t *testing.T) {
	m := loaded(t, roster(), &Layout{}, newRecLogger())

	result := m.Result()
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, names(result.Records))

	m, _ = step(t, m, message.SortMsg{Field: "tier"})
	assert.Equal(t, []string{"alice", "dave", "bob", "carol"}, names(m.Result().Records))

	m, _ = step(t, m, message.SortMsg{Field: "tier"})
	assert.Equal(t, []string{"carol", "bob", "alice", "dave"}, names(m.Result().Records))

	m, _ = step(t, m, message.SortMsg{Field: "tier"})
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, names(m.Result().Records))
}

func TestModel_ReloadKeepsSortAndFilters(t *testing.T) {
	store := roster()
	m := loaded(t, store, &Layout{}, newRecLogger())

	m, _ = step(t, m, message.SortMsg{Field: "name"})
	m, _ = step(t, m, message.SortMsg{Field: "name"})
	m, _ = step(t, m, message.SetFiltersMsg{Filters: []nt.Filter{
		{Op: nt.Eq, Field: "team", Value: "dba", Enabled: true},
	}})
	assert.Equal(t, []string{"carol", "alice"}, names(m.Result().Records))

	store.records = append(store.records, shift("erin", "dba", 2, int64(5)))
	m, _ = step(t, m, m.loadCmd()())

	assert.Equal(t, []string{"erin", "carol", "alice"}, names(m.Result().Records))
	assert.Equal(t, 5, m.Result().Total)
}

func TestModel_UnknownFieldsAreLogged(t *testing.T) {
	lgr := newRecLogger()
	m := loaded(t, roster(), &Layout{}, lgr)

	m, _ = step(t, m, message.SortMsg{Field: "nope"})
	assert.Equal(t, []string{"alice", "bob", "carol", "dave"}, names(m.Result().Records))
	assert.Contains(t, *lgr.infos, "sort field not found in records")

	m, _ = step(t, m, message.SetFiltersMsg{Filters: []nt.Filter{
		{Op: nt.Eq, Field: "owner", Value: "dba", Enabled: true},
	}})
	assert.Len(t, m.Result().Records, 4)
	assert.Contains(t, *lgr.infos, "filter fields not found in records, slots skipped")
}

func TestModel_Search(t *testing.T) {
	m := loaded(t, roster(), &Layout{Search: []string{"name"}}, newRecLogger())

	m = keys(t, m, "/", "A", "r")
	assert.Equal(t, []string{"carol"}, names(m.Result().Records))

	m = keys(t, m, "enter")
	assert.Contains(t, m.statusLine(), "search: Ar")

	m = keys(t, m, "/", "esc")
	assert.Len(t, m.Result().Records, 4)
}

func TestModel_Filters(t *testing.T) {
	m := loaded(t, roster(), &Layout{}, newRecLogger())

	m, _ = step(t, m, message.OpenFilterMsg{Field: "team", Value: "infra"})
	assert.Equal(t, FilterScreen, m.Screen())

	// the panel applies on enter
	m, cmd := step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	assert.Equal(t, TableScreen, m.Screen())
	assert.Equal(t, []string{"bob", "dave"}, names(m.Result().Records))

	m, _ = step(t, m, message.SetFiltersMsg{Filters: []nt.Filter{
		{Op: nt.Choice, Field: "team", Value: "All", Enabled: true},
	}})
	assert.Len(t, m.Result().Records, 4, "All is no constraint")

	m, _ = step(t, m, message.SetFiltersMsg{Filters: []nt.Filter{
		{Op: nt.Eq, Field: "team", Value: "All", Enabled: true},
	}})
	assert.Empty(t, m.Result().Records, "equality with All is literal")

	m = keys(t, m, "c")
	assert.Len(t, m.Result().Records, 4)
}

func TestModel_FilterOnEmptyCell(t *testing.T) {
	store := roster()
	store.records[1] = store.records[1].With("team", nt.Value{})
	m := loaded(t, store, &Layout{}, newRecLogger())

	// f on bob's empty team cell
	m = keys(t, m, "j", "l")
	m, cmd := step(t, m, tea.KeyPressMsg{Code: 'f', Text: "f"})
	require.NotNil(t, cmd)
	opened := cmd()
	assert.Equal(t, message.OpenFilterMsg{Field: "team", Value: "", Null: true}, opened)

	m, _ = step(t, m, opened)
	m, cmd = step(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	assert.Equal(t, []string{"bob"}, names(m.Result().Records))
}

func TestModel_SearchSlotReserved(t *testing.T) {
	m := loaded(t, roster(), &Layout{}, newRecLogger())

	_, cmd := step(t, m, message.SetFiltersMsg{Filters: []nt.Filter{
		{Slot: "search", Op: nt.Eq, Field: "team", Value: "dba", Enabled: true},
	}})
	require.NotNil(t, cmd)
	assert.IsType(t, message.ErrorMsg{}, cmd())
}

func TestModel_Move(t *testing.T) {
	lgr := newRecLogger()
	m := loaded(t, roster(), &Layout{Reorder: "priority"}, lgr)

	m, _ = step(t, m, message.MoveMsg{From: 3, To: 0})
	records := m.Result().Records
	assert.Equal(t, []string{"dave", "alice", "bob", "carol"}, names(records))
	assert.Equal(t, int64(1), records[0].Get("priority").Raw)
	assert.Equal(t, int64(4), records[3].Get("priority").Raw)

	m, _ = step(t, m, message.SortMsg{Field: "name"})
	m, cmd := step(t, m, message.MoveMsg{From: 0, To: 1})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, message.ErrorMsg{}, msg)

	m, _ = step(t, m, msg)
	assert.Contains(t, m.statusLine(), "clear sort and filters to reorder")
	assert.Len(t, *lgr.errors, 1)
}

func TestModel_Screens(t *testing.T) {
	m := loaded(t, roster(), &Layout{}, newRecLogger())

	m = keys(t, m, "enter")
	assert.Equal(t, DetailScreen, m.Screen())
	m = keys(t, m, "esc")
	assert.Equal(t, TableScreen, m.Screen())

	_, cmd := step(t, m, tea.KeyPressMsg{Code: 'C', Text: "C"})
	require.NotNil(t, cmd)
	assert.IsType(t, message.ErrorMsg{}, cmd())

	m = loaded(t, roster(), &Layout{Calendar: &CalendarSpec{Start: "start", Title: "name"}}, newRecLogger())
	m = keys(t, m, "C")
	assert.Equal(t, CalendarScreen, m.Screen())
}

func TestModel_LoadError(t *testing.T) {
	store := roster()
	store.err = errors.New("disk on fire")

	m, err := NewModel(context.Background(), store, &Layout{}, "", newRecLogger())
	require.NoError(t, err)

	msg := m.Init()()
	require.IsType(t, message.ErrorMsg{}, msg)
	assert.Contains(t, msg.(message.ErrorMsg).Err.Error(), "failed to load from fake")
}

func TestRenderFooter(t *testing.T) {
	counts := map[string]int{"ok": 3, "critical": 1}

	out := RenderFooter(2, 4, 9, counts, "health.json (health)", 80)
	assert.Contains(t, out, "2/4 (9)")
	assert.Contains(t, out, "ok 3")
	assert.Contains(t, out, "critical 1")
	assert.Contains(t, out, "health.json (health)")
}

func TestOptions_Apply(t *testing.T) {
	layout := &Layout{
		Filters: []nt.Filter{{Op: nt.Eq, Field: "team", Value: "dba", Enabled: true}},
	}

	applied, err := Options{Sort: "tier", Desc: true, Filters: []string{"team=infra", "tier = 1"}}.Apply(layout)
	require.NoError(t, err)

	assert.Equal(t, nt.Sort{Field: "tier", Direction: nt.Descending}, applied.Sort)
	require.Len(t, applied.Filters, 2)
	assert.Equal(t, "infra", applied.Filters[0].Value)
	assert.Equal(t, nt.Choice, applied.Filters[0].Op)
	assert.Equal(t, "1", applied.Filters[1].Value)
	assert.Equal(t, "dba", layout.Filters[0].Value, "layout is not modified")

	_, err = Options{Filters: []string{"team"}}.Apply(layout)
	assert.Error(t, err)
}

const sampleLayouts = `
log_path: opsdeck.log
kind: oncall
layouts:
  default:
    columns:
      - field: name
        width: 12
  oncall:
    sort: {field: tier, direction: asc}
    buckets: {field: team}
    filters:
      - {slot: team, op: choice, field: team, value: All, enabled: true}
`

func TestConfig(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, yaml.Unmarshal([]byte(sampleLayouts), cfg))
	require.NoError(t, cfg.Validate())

	oncall := cfg.Layout("oncall")
	assert.Equal(t, nt.Sort{Field: "tier", Direction: nt.Ascending}, oncall.Sort)
	assert.Equal(t, "name", cfg.Layout("backup").Columns[0].Field)

	cfg.Kind = "mainframe"
	assert.Error(t, cfg.Validate())

	cfg.Kind = ""
	cfg.Layouts["bad"] = &Layout{Filters: []nt.Filter{{Op: nt.Eq, Enabled: true}}}
	assert.Error(t, cfg.Validate())
}

func TestSummary(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, yaml.Unmarshal([]byte(sampleLayouts), cfg))

	out, err := Summary(context.Background(), roster(), cfg.Layout("oncall"), "ca", newRecLogger())
	require.NoError(t, err)

	assert.Contains(t, out, "tier ▲")
	assert.Contains(t, out, "carol")
	assert.NotContains(t, out, "bob")
	assert.Contains(t, out, "1 of 4 records from fake")
	assert.Contains(t, out, "dba")
}

func TestModel_TableHelp(t *testing.T) {
	m := loaded(t, roster(), &Layout{}, newRecLogger())

	help := m.statusLine()
	assert.Contains(t, help, "K/J: move")
	assert.Contains(t, help, "f: filter cell")
}
