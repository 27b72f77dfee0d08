package collection

import (
	"cmp"
	"slices"

	nt "opsdeck/entity"
)

// NoBucket is the key for records whose bucket field is null.
const NoBucket = "none"

// BucketFunc classifies a record.
type BucketFunc func(rec nt.Record) string

// Counts holds membership per bucket key.
type Counts map[string]int

// Bucket is one key and its count.
type Bucket struct {
	Key   string
	Count int
}

// Aggregate counts records per bucket.
// With a nil bucket func every record lands in NoBucket.
func Aggregate(records []nt.Record, bucket BucketFunc) Counts {

	counts := Counts{}
	for _, rec := range records {
		key := NoBucket
		if bucket != nil {
			key = bucket(rec)
		}
		counts[key]++
	}
	return counts
}

// Total sums the counts.
func (counts Counts) Total() (total int) {
	for _, n := range counts {
		total += n
	}
	return
}

// Sorted returns buckets by descending count then key.
func (counts Counts) Sorted() []Bucket {

	buckets := make([]Bucket, 0, len(counts))
	for key, n := range counts {
		buckets = append(buckets, Bucket{Key: key, Count: n})
	}

	slices.SortFunc(buckets, func(a, b Bucket) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return buckets
}

// ByField buckets on the text of a field.
func ByField(field string) BucketFunc {
	return func(rec nt.Record) string {
		val := rec.Get(field)
		if val.IsNull() {
			return NoBucket
		}
		return val.String()
	}
}

// Thresholds buckets a numeric field into the highest band whose Min it reaches.
// Values below every band, or not numeric, go to below.
func Thresholds(field string, bands []nt.Band, below string) BucketFunc {

	ordered := slices.Clone(bands)
	slices.SortFunc(ordered, func(a, b nt.Band) int {
		return cmp.Compare(b.Min, a.Min)
	})
	if below == "" {
		below = NoBucket
	}

	return func(rec nt.Record) string {
		f, err := rec.Get(field).Float()
		if err != nil {
			return below
		}
		for _, band := range ordered {
			if f >= band.Min {
				return band.Name
			}
		}
		return below
	}
}

// FromSpec builds the bucket func for a BucketSpec, nil when there is none.
func FromSpec(spec *nt.BucketSpec) BucketFunc {

	switch {
	case spec == nil || spec.Field == "":
		return nil
	case len(spec.Bands) > 0:
		return Thresholds(spec.Field, spec.Bands, spec.Below)
	}
	return ByField(spec.Field)
}
