package collection

import (
	"github.com/pkg/errors"

	nt "opsdeck/entity"
)

// Move returns a copy of records with the record at from placed at to.
func Move(records []nt.Record, from, to int) (moved []nt.Record, err error) {

	last := len(records) - 1
	if from < 0 || from > last || to < 0 || to > last {
		err = errors.Errorf("cannot move %d to %d in %d records", from, to, len(records))
		return
	}

	moved = make([]nt.Record, 0, len(records))
	for i, rec := range records {
		if i != from {
			moved = append(moved, rec)
		}
	}
	moved = append(moved[:to], append([]nt.Record{records[from]}, moved[to:]...)...)
	return
}

// Renumber returns copies of records with field set to 1-based position.
func Renumber(records []nt.Record, field string) []nt.Record {

	out := make([]nt.Record, len(records))
	for i, rec := range records {
		out[i] = rec.With(field, nt.Value{Raw: int64(i + 1)})
	}
	return out
}
