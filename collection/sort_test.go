package collection

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nt "opsdeck/entity"
)

func recs(rows ...map[string]any) []nt.Record {
	records := make([]nt.Record, len(rows))
	for i, row := range rows {
		rec := nt.Record{}
		for field, raw := range row {
			rec[field] = nt.Value{Raw: raw}
		}
		records[i] = rec
	}
	return records
}

func scores() []nt.Record {
	return recs(
		map[string]any{"name": "b", "score": 80},
		map[string]any{"name": "a", "score": 95},
		map[string]any{"name": "c", "score": 60},
	)
}

func names(records []nt.Record) []string {
	out := []string{}
	for _, rec := range records {
		out = append(out, rec.Get("name").String())
	}
	return out
}

func asc(field string) nt.Sort {
	return nt.Sort{Field: field, Direction: nt.Ascending}
}

func desc(field string) nt.Sort {
	return nt.Sort{Field: field, Direction: nt.Descending}
}

func TestSort_ScoreAscending(t *testing.T) {
	sorted := Sort(scores(), asc("score"))
	assert.Equal(t, []string{"c", "b", "a"}, names(sorted))
}

func TestSort_ScoreDescending(t *testing.T) {
	sorted := Sort(scores(), desc("score"))
	assert.Equal(t, []string{"a", "b", "c"}, names(sorted))
}

func TestSort_NoneKeepsInputOrder(t *testing.T) {
	sorted := Sort(scores(), nt.Sort{Field: "score"})
	assert.Equal(t, []string{"b", "a", "c"}, names(sorted))
}

func TestSort_NullsLastEitherDirection(t *testing.T) {
	records := recs(
		map[string]any{"name": "x"},
		map[string]any{"name": "y", "score": 10},
		map[string]any{"name": "z", "score": nil},
		map[string]any{"name": "w", "score": 5},
	)

	assert.Equal(t, []string{"w", "y", "x", "z"}, names(Sort(records, asc("score"))))
	assert.Equal(t, []string{"y", "w", "x", "z"}, names(Sort(records, desc("score"))))
}

func TestSort_Stable(t *testing.T) {
	records := recs(
		map[string]any{"name": "1", "status": "ok"},
		map[string]any{"name": "2", "status": "critical"},
		map[string]any{"name": "3", "status": "ok"},
		map[string]any{"name": "4", "status": "critical"},
		map[string]any{"name": "5", "status": "ok"},
	)

	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, names(Sort(records, asc("status"))))
	assert.Equal(t, []string{"1", "3", "5", "2", "4"}, names(Sort(records, desc("status"))))
}

func TestSort_StringsByByteOrder(t *testing.T) {
	records := recs(
		map[string]any{"name": "b"},
		map[string]any{"name": "B"},
		map[string]any{"name": "a"},
		map[string]any{"name": "A"},
	)

	assert.Equal(t, []string{"A", "B", "a", "b"}, names(Sort(records, asc("name"))))
}

func TestSort_MixedKinds(t *testing.T) {
	records := recs(
		map[string]any{"name": "s", "v": "text"},
		map[string]any{"name": "n", "v": 3},
		map[string]any{"name": "b", "v": true},
		map[string]any{"name": "f", "v": 2.5},
	)

	assert.Equal(t, []string{"b", "f", "n", "s"}, names(Sort(records, asc("v"))))
}

func TestSort_UnknownFieldIsNoop(t *testing.T) {
	sorted := Sort(scores(), asc("missing"))
	assert.Equal(t, []string{"b", "a", "c"}, names(sorted))
}

func TestSort_EmptyInput(t *testing.T) {
	sorted := Sort(nil, asc("score"))
	require.NotNil(t, sorted)
	assert.Empty(t, sorted)
}

func TestSort_LeavesInputAlone(t *testing.T) {
	records := scores()
	_ = Sort(records, asc("score"))
	assert.Equal(t, []string{"b", "a", "c"}, names(records))
}

func TestSort_AscendingIsNonDecreasing(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		rows := make([]map[string]any, 1+rnd.Intn(40))
		for i := range rows {
			rows[i] = map[string]any{"score": rnd.Intn(10) - 5}
		}

		sorted := Sort(recs(rows...), asc("score"))
		for i := 1; i < len(sorted); i++ {
			prev, _ := sorted[i-1].Get("score").Float()
			cur, _ := sorted[i].Get("score").Float()
			assert.LessOrEqual(t, prev, cur)
		}
	}
}

func TestSortNext(t *testing.T) {
	tests := []struct {
		name  string
		from  nt.Sort
		field string
		want  nt.Sort
	}{
		{"fresh field", nt.Sort{}, "score", asc("score")},
		{"none to ascending", nt.Sort{Field: "score"}, "score", asc("score")},
		{"ascending to descending", asc("score"), "score", desc("score")},
		{"descending to none", desc("score"), "score", nt.Sort{Field: "score"}},
		{"other field resets", desc("score"), "name", asc("name")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.Next(tc.field))
		})
	}
}

func TestSort_CycleRestoresInput(t *testing.T) {
	records := scores()
	vw := NewView(records, nil)

	for _, want := range [][]string{{"c", "b", "a"}, {"a", "b", "c"}, {"b", "a", "c"}} {
		vw = vw.ToggleSort("score")
		result, err := vw.Result()
		require.NoError(t, err)
		assert.Equal(t, want, names(result.Records))
	}
	assert.Equal(t, nt.None, vw.Sort().Direction)
}
