package collection

import (
	"maps"

	nt "opsdeck/entity"
)

// View is the state behind one table: the record set as last loaded,
// the sort directive and the filter slots.
// Each transition returns a new View and leaves the receiver untouched.
type View struct {
	records []nt.Record
	sort    nt.Sort
	slots   Slots
	bucket  BucketFunc
}

// Result is a view rendered for display.
type Result struct {
	Records      []nt.Record // filtered then sorted
	Total        int         // records before filtering
	Counts       Counts      // buckets over Records
	Sort         nt.Sort
	UnknownSort  bool     // sort field carried by no record
	UnknownSlots []string // slots skipped, their fields carried by no record
}

// NewView creates a view over records.
func NewView(records []nt.Record, bucket BucketFunc) View {
	return View{
		records: clone(records),
		slots:   Slots{},
		bucket:  bucket,
	}
}

// WithRecords replaces the record set, keeping sort and filters.
func (vw View) WithRecords(records []nt.Record) View {
	vw.records = clone(records)
	return vw
}

// WithBucket replaces the bucket func.
func (vw View) WithBucket(bucket BucketFunc) View {
	vw.bucket = bucket
	return vw
}

// Records returns the record set in load order.
func (vw View) Records() []nt.Record {
	return clone(vw.records)
}

// Sort returns the sort directive.
func (vw View) Sort() nt.Sort {
	return vw.sort
}

// Slots returns a copy of the filter slots.
func (vw View) Slots() Slots {
	return copySlots(vw.slots)
}

// ToggleSort advances the directive for a sort request on field.
func (vw View) ToggleSort(field string) View {
	vw.sort = vw.sort.Next(field)
	return vw
}

// SetSort replaces the directive.
func (vw View) SetSort(srt nt.Sort) View {
	vw.sort = srt
	return vw
}

// SetFilter places pred in slot, nil clearing the constraint.
func (vw View) SetFilter(slot string, pred Predicate) View {
	vw.slots = vw.slots.With(slot, pred)
	return vw
}

// WithSlots replaces all filter slots.
func (vw View) WithSlots(slots Slots) View {
	vw.slots = copySlots(slots)
	return vw
}

// ClearFilter removes slot.
func (vw View) ClearFilter(slot string) View {
	vw.slots = vw.slots.Without(slot)
	return vw
}

// ClearFilters removes every slot.
func (vw View) ClearFilters() View {
	vw.slots = Slots{}
	return vw
}

// Result filters, sorts and counts the record set.
func (vw View) Result() (result Result, err error) {

	filtered, err := Filter(vw.records, vw.slots)
	if err != nil {
		return
	}

	result = Result{
		Records: Sort(filtered, vw.sort),
		Total:   len(vw.records),
		Counts:  Aggregate(filtered, vw.bucket),
		Sort:    vw.sort,
	}
	result.UnknownSort = vw.sort.Active() && len(vw.records) > 0 && !HasField(vw.records, vw.sort.Field)
	result.UnknownSlots = UnknownSlots(vw.records, vw.slots)
	return
}

func clone(records []nt.Record) []nt.Record {
	out := make([]nt.Record, len(records))
	copy(out, records)
	return out
}

func copySlots(slots Slots) Slots {
	out := make(Slots, len(slots))
	maps.Copy(out, slots)
	return out
}
