package opsdeck

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"opsdeck/calendar"
	"opsdeck/collection"
	nt "opsdeck/entity"
)

// SearchSlot is the filter slot fed by the search box.
const SearchSlot = "search"

// Layout configures how one kind of record is shown.
type Layout struct {
	Columns  []nt.Column    `yaml:"columns" validate:"dive"`
	Filters  []nt.Filter    `yaml:"filters,omitempty"`
	Sort     nt.Sort        `yaml:"sort,omitempty"`
	Buckets  *nt.BucketSpec `yaml:"buckets,omitempty"`
	Search   []string       `yaml:"search,omitempty"`  // fields searched, default visible columns
	Reorder  string         `yaml:"reorder,omitempty"` // field renumbered after a move
	Calendar *CalendarSpec  `yaml:"calendar,omitempty"`
}

// CalendarSpec names the fields placing records on the calendar.
type CalendarSpec struct {
	Start     string `yaml:"start" validate:"required"`
	Title     string `yaml:"title" validate:"required"`
	Tag       string `yaml:"tag,omitempty"`
	WeekStart string `yaml:"week_start,omitempty" validate:"omitempty,oneof=monday sunday"`
}

// Slots compiles the layout's filters.
func (layout *Layout) Slots() (slots collection.Slots, err error) {

	slots, err = collection.CompileSlots(layout.Filters)
	if err != nil {
		return
	}

	_, ok := slots[SearchSlot]
	if ok {
		err = errors.Errorf("slot %q is reserved for search", SearchSlot)
	}
	return
}

// View creates a collection view with the layout's filters, sort and buckets.
func (layout *Layout) View(records []nt.Record) (view collection.View, err error) {

	slots, err := layout.Slots()
	if err != nil {
		return
	}

	view = collection.NewView(records, collection.FromSpec(layout.Buckets)).
		WithSlots(slots).
		SetSort(layout.Sort)
	return
}

// ColumnsFor returns the configured columns, or one per field when none are.
func (layout *Layout) ColumnsFor(fields []nt.Field) []nt.Column {

	if len(layout.Columns) > 0 {
		return layout.Columns
	}

	columns := make([]nt.Column, len(fields))
	for i, field := range fields {
		columns[i] = nt.Column{
			Field: field.Name,
			Width: defaultWidth(field),
		}
	}
	return columns
}

// SearchFields returns the fields searched, defaulting to visible columns.
func (layout *Layout) SearchFields(columns []nt.Column) []string {

	if len(layout.Search) > 0 {
		return layout.Search
	}

	fields := []string{}
	for _, col := range columns {
		if !col.Hidden {
			fields = append(fields, col.Field)
		}
	}
	return fields
}

// Builder returns the calendar builder for the layout.
func (layout *Layout) Builder(loc *time.Location) calendar.Builder {

	bld := calendar.Builder{
		WeekStart: time.Monday,
		Location:  loc,
	}
	if layout.Calendar != nil && strings.EqualFold(layout.Calendar.WeekStart, "sunday") {
		bld.WeekStart = time.Sunday
	}
	return bld
}

// Events places records on the calendar, when the layout has one.
func (layout *Layout) Events(records []nt.Record) (events []calendar.Event, skipped int) {

	if layout.Calendar == nil {
		return
	}

	cal := layout.Calendar
	return calendar.EventsFrom(records, cal.Start, cal.Title, cal.Tag)
}

func defaultWidth(field nt.Field) int {
	switch field.Type {
	case nt.Bool:
		return max(len(field.Name), 5)
	case nt.Number:
		return max(len(field.Name), 8)
	case nt.Time:
		return max(len(field.Name), 19)
	}
	return max(len(field.Name), 16)
}
