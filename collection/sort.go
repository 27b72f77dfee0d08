package collection

import (
	"slices"

	nt "opsdeck/entity"
)

// Sort returns records ordered by the directive.
// Nulls go last in either direction and equal keys keep their input order.
// An inactive directive, or a field no record carries, returns the input order.
func Sort(records []nt.Record, directive nt.Sort) []nt.Record {

	sorted := make([]nt.Record, len(records))
	copy(sorted, records)

	if !directive.Active() || !HasField(records, directive.Field) {
		return sorted
	}

	field := directive.Field
	desc := directive.Direction == nt.Descending

	slices.SortStableFunc(sorted, func(a, b nt.Record) int {
		av, bv := a.Get(field), b.Get(field)

		switch {
		case av.IsNull() && bv.IsNull():
			return 0
		case av.IsNull():
			return 1
		case bv.IsNull():
			return -1
		}

		if desc {
			return Compare(bv, av)
		}
		return Compare(av, bv)
	})

	return sorted
}
