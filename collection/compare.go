// Package collection sorts, filters and counts record sets for display.
//
// Every function here is pure: inputs are never modified and results are
// freshly allocated, so a stale result can simply be dropped.
package collection

import (
	"cmp"
	"strings"

	nt "opsdeck/entity"
)

// kindRank orders values of differing kinds within one field.
var kindRank = map[nt.Kind]int{
	nt.Bool:   0,
	nt.Number: 1,
	nt.Time:   2,
	nt.String: 3,
	nt.Other:  4,
}

// Compare orders two non-null values.
// Numbers compare numerically, strings by byte order, false before true.
func Compare(a, b nt.Value) int {

	ak, bk := a.Kind(), b.Kind()
	if ak != bk {
		return cmp.Compare(kindRank[ak], kindRank[bk])
	}

	switch ak {
	case nt.Bool:
		ab, _ := a.Bool()
		bb, _ := b.Bool()
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		}
		return 1
	case nt.Number:
		af, _ := a.Float()
		bf, _ := b.Float()
		return cmp.Compare(af, bf)
	case nt.Time:
		at, _ := a.Time()
		bt, _ := b.Time()
		return at.Compare(bt)
	}
	return strings.Compare(a.String(), b.String())
}

// HasField is true when any record carries field.
func HasField(records []nt.Record, field string) bool {
	for _, rec := range records {
		if rec.Has(field) {
			return true
		}
	}
	return false
}
