package collection

import (
	"maps"
	"slices"

	"github.com/pkg/errors"

	nt "opsdeck/entity"
)

// Slots holds independent predicates by slot name.
// A nil predicate leaves its slot without a constraint.
type Slots map[string]Predicate

// With returns a copy of the slots with slot set to pred.
func (slots Slots) With(slot string, pred Predicate) Slots {
	out := make(Slots, len(slots)+1)
	maps.Copy(out, slots)
	out[slot] = pred
	return out
}

// Without returns a copy of the slots with slot removed.
func (slots Slots) Without(slot string) Slots {
	out := maps.Clone(slots)
	delete(out, slot)
	return out
}

// Active returns the names of slots holding a predicate, sorted.
func (slots Slots) Active() []string {
	names := []string{}
	for name, pred := range slots {
		if pred != nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Filter returns the records passing every active slot, in input order.
// Slots over fields no record carries are skipped, see UnknownSlots.
// A failing predicate aborts the pass; its error names the slot.
func Filter(records []nt.Record, slots Slots) (filtered []nt.Record, err error) {

	unknown := UnknownSlots(records, slots)
	active := slices.DeleteFunc(slots.Active(), func(name string) bool {
		return slices.Contains(unknown, name)
	})
	filtered = make([]nt.Record, 0, len(records))

	for i, rec := range records {
		keep := true
		for _, name := range active {
			keep, err = match(slots[name], rec)
			if err != nil {
				err = errors.Wrapf(err, "filter slot %q failed on record %d", name, i)
				return nil, err
			}
			if !keep {
				break
			}
		}
		if keep {
			filtered = append(filtered, rec)
		}
	}

	return
}

// UnknownSlots returns the active slots whose predicates only read fields
// that no record carries, sorted.
func UnknownSlots(records []nt.Record, slots Slots) []string {

	unknown := []string{}
	if len(records) == 0 {
		return unknown
	}

	for _, name := range slots.Active() {
		fields := fieldsOf(slots[name])
		if len(fields) == 0 {
			continue
		}
		if !slices.ContainsFunc(fields, func(field string) bool { return HasField(records, field) }) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// fieldsOf returns the fields a predicate reads, nil when it cannot tell.
func fieldsOf(pred Predicate) (fields []string) {

	switch pred := pred.(type) {
	case FieldPredicate:
		return []string{pred.Field}
	case not:
		return fieldsOf(pred.inner)
	case anyOf:
		return fieldsOfAll(pred)
	case allOf:
		return fieldsOfAll(pred)
	}
	return nil
}

func fieldsOfAll(preds []Predicate) (fields []string) {
	for _, pred := range preds {
		inner := fieldsOf(pred)
		if inner == nil {
			return nil
		}
		fields = append(fields, inner...)
	}
	return
}

// match runs a predicate, turning a panic into an error.
func match(pred Predicate, rec nt.Record) (ok bool, err error) {

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("predicate panicked: %v", r)
		}
	}()

	return pred.Match(rec)
}
