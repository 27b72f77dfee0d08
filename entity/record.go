package entity

import "maps"

// Field describes one column of a record set.
type Field struct {
	Name string
	Type Kind
}

// Record is one row of domain data keyed by field name.
// Absent fields read as null.
type Record map[string]Value

// Get returns the value of field, null when absent.
func (rec Record) Get(field string) Value {
	return rec[field]
}

// Has is true when field is present, even if null.
func (rec Record) Has(field string) bool {
	_, ok := rec[field]
	return ok
}

// Id returns the conventional "id" field as a string.
func (rec Record) Id() string {
	return rec.Get("id").String()
}

// With returns a copy of the record with field set.
func (rec Record) With(field string, val Value) Record {
	out := make(Record, len(rec)+1)
	maps.Copy(out, rec)
	out[field] = val
	return out
}

// Raw returns a plain map of the underlying values.
func (rec Record) Raw() map[string]any {
	raw := make(map[string]any, len(rec))
	for name, val := range rec {
		raw[name] = val.Raw
	}
	return raw
}
