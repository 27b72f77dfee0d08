package collection

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	nt "opsdeck/entity"
)

// All is the choice offered by pickers meaning "no constraint".
const All = "All"

// Predicate decides whether a record is included.
type Predicate interface {
	Match(rec nt.Record) (bool, error)
}

// Test examines a single field value.
type Test func(val nt.Value) (bool, error)

// FieldPredicate applies a test to one field of a record.
type FieldPredicate struct {
	Field string
	Test  Test
}

// Match tests the predicate's field.
func (fp FieldPredicate) Match(rec nt.Record) (bool, error) {
	return fp.Test(rec.Get(fp.Field))
}

// Func builds a field predicate from a plain boolean test.
func Func(field string, fn func(nt.Value) bool) Predicate {
	return FieldPredicate{
		Field: field,
		Test: func(val nt.Value) (bool, error) {
			return fn(val), nil
		},
	}
}

// Custom builds a field predicate whose test may fail.
func Custom(field string, test Test) Predicate {
	return FieldPredicate{Field: field, Test: test}
}

// Equals matches a field equal to want, a literal match even for "All".
func Equals(field string, want any) Predicate {
	return Cmp(field, nt.Eq, want)
}

// Choice matches a picker selection, returning nil for All or empty.
func Choice(field, choice string) Predicate {
	choice = strings.TrimSpace(choice)
	if choice == "" || choice == All {
		return nil
	}
	return Equals(field, choice)
}

// Contains matches a field whose text contains sub, ignoring case.
// Blank sub is no constraint and returns nil.
func Contains(field, sub string) Predicate {

	sub = strings.ToLower(strings.TrimSpace(sub))
	if sub == "" {
		return nil
	}
	return Func(field, func(val nt.Value) bool {
		if val.IsNull() {
			return false
		}
		return strings.Contains(strings.ToLower(val.String()), sub)
	})
}

// Search matches text in any of fields, ignoring case.
// Blank text is no constraint and returns nil.
func Search(text string, fields ...string) Predicate {

	text = strings.TrimSpace(text)
	if text == "" || len(fields) == 0 {
		return nil
	}

	preds := make([]Predicate, len(fields))
	for i, field := range fields {
		preds[i] = Contains(field, text)
	}
	if len(preds) == 1 {
		return preds[0]
	}
	return AnyOf(preds...)
}

// Matches tests a field against a regular expression.
func Matches(field, pattern string) (Predicate, error) {

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "bad pattern for %s", field)
	}

	return Func(field, func(val nt.Value) bool {
		return !val.IsNull() && re.MatchString(val.String())
	}), nil
}

// Null matches a field that is null or absent.
func Null(field string) Predicate {
	return Func(field, nt.Value.IsNull)
}

// Is matches a boolean field.
func Is(field string, want bool) Predicate {
	return Func(field, func(val nt.Value) bool {
		got, err := val.Bool()
		return err == nil && got == want
	})
}

// Between matches a numeric field within lo and hi inclusive.
func Between(field string, lo, hi float64) Predicate {
	return Func(field, func(val nt.Value) bool {
		f, err := val.Float()
		return err == nil && f >= lo && f <= hi
	})
}

// Cmp compares a field against want with a comparison operator.
// A string want is read as the field's kind, so "70" compares with numbers.
// Null fields never match, except for Ne.
func Cmp(field string, op nt.FilterOp, want any) Predicate {

	target := nt.Value{Raw: want}

	return Custom(field, func(val nt.Value) (bool, error) {
		if val.IsNull() || target.IsNull() {
			return op == nt.Ne && val.IsNull() != target.IsNull(), nil
		}

		wanted, err := target.As(val.Kind())
		if err != nil {
			// not comparable, so not equal
			return op == nt.Ne, nil
		}

		c := Compare(val, wanted)
		switch op {
		case nt.Eq:
			return c == 0, nil
		case nt.Ne:
			return c != 0, nil
		case nt.Gt:
			return c > 0, nil
		case nt.Gte:
			return c >= 0, nil
		case nt.Lt:
			return c < 0, nil
		case nt.Lte:
			return c <= 0, nil
		}
		return false, errors.Errorf("op %s is not a comparison", op)
	})
}

type anyOf []Predicate

func (preds anyOf) Match(rec nt.Record) (bool, error) {
	for _, pred := range preds {
		ok, err := pred.Match(rec)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

type allOf []Predicate

func (preds allOf) Match(rec nt.Record) (bool, error) {
	for _, pred := range preds {
		ok, err := pred.Match(rec)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

type not struct {
	inner Predicate
}

func (n not) Match(rec nt.Record) (bool, error) {
	ok, err := n.inner.Match(rec)
	return !ok && err == nil, err
}

// AnyOf matches when any of preds does.
// Nil preds are skipped, and nil is returned when none remain.
func AnyOf(preds ...Predicate) Predicate {
	preds = active(preds)
	if len(preds) == 0 {
		return nil
	}
	return anyOf(preds)
}

// AllOf matches when all of preds do.
// Nil preds are skipped, and nil is returned when none remain.
func AllOf(preds ...Predicate) Predicate {
	preds = active(preds)
	if len(preds) == 0 {
		return nil
	}
	return allOf(preds)
}

// Not inverts pred, nil staying no constraint.
func Not(pred Predicate) Predicate {
	if pred == nil {
		return nil
	}
	return not{inner: pred}
}

func active(preds []Predicate) []Predicate {
	out := make([]Predicate, 0, len(preds))
	for _, pred := range preds {
		if pred != nil {
			out = append(out, pred)
		}
	}
	return out
}
