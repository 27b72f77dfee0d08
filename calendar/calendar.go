// Package calendar lays out dated records as a month grid.
package calendar

import (
	"slices"
	"time"

	nt "opsdeck/entity"
)

// Event is something shown on a calendar day.
type Event struct {
	Start time.Time
	Title string
	Tag   string // bucket key, for styling
}

// Day is one cell of the grid.
type Day struct {
	Date    time.Time
	Outside bool // belongs to the previous or next month
	Events  []Event
}

// Grid is a month laid out as full weeks.
type Grid struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Weeks     [][7]Day
}

// Builder lays out month grids.
type Builder struct {
	WeekStart time.Weekday
	Location  *time.Location
}

// Month builds the grid for year and month, placing events on their day.
// Leading and trailing days of adjacent months fill the first and last weeks.
func (bld Builder) Month(year int, month time.Month, events []Event) Grid {

	loc := bld.Location
	if loc == nil {
		loc = time.UTC
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lead := (int(first.Weekday()) - int(bld.WeekStart) + 7) % 7
	days := first.AddDate(0, 1, -1).Day()
	weeks := (lead + days + 6) / 7
	start := first.AddDate(0, 0, -lead)

	byDay := map[string][]Event{}
	for _, ev := range sortEvents(events) {
		key := dayKey(ev.Start.In(loc))
		byDay[key] = append(byDay[key], ev)
	}

	grid := Grid{
		Year:      first.Year(),
		Month:     first.Month(),
		WeekStart: bld.WeekStart,
		Weeks:     make([][7]Day, weeks),
	}
	for w := range grid.Weeks {
		for d := range 7 {
			date := start.AddDate(0, 0, w*7+d)
			grid.Weeks[w][d] = Day{
				Date:    date,
				Outside: date.Month() != first.Month(),
				Events:  byDay[dayKey(date)],
			}
		}
	}

	return grid
}

// Weekdays returns the column order of the grid.
func (grid Grid) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 7)
	for i := range days {
		days[i] = time.Weekday((int(grid.WeekStart) + i) % 7)
	}
	return days
}

// Events returns the grid's in-month events in day order.
func (grid Grid) Events() (events []Event) {
	for _, week := range grid.Weeks {
		for _, day := range week {
			if !day.Outside {
				events = append(events, day.Events...)
			}
		}
	}
	return
}

// EventsFrom reads events from records, skipping those without a start time.
func EventsFrom(records []nt.Record, startField, titleField, tagField string) (events []Event, skipped int) {

	for _, rec := range records {
		start, err := rec.Get(startField).Time()
		if err != nil {
			skipped++
			continue
		}

		ev := Event{
			Start: start,
			Title: rec.Get(titleField).String(),
		}
		if tagField != "" {
			ev.Tag = rec.Get(tagField).String()
		}
		events = append(events, ev)
	}
	return
}

// unexported

func sortEvents(events []Event) []Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		return a.Start.Compare(b.Start)
	})
	return sorted
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
