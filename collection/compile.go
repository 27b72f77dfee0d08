package collection

import (
	"fmt"

	"github.com/pkg/errors"

	nt "opsdeck/entity"
)

// Compile turns a configured filter into a predicate.
// Disabled filters, choices of All and empty logical groups compile to nil.
func Compile(f nt.Filter) (pred Predicate, err error) {

	if !f.Enabled {
		return
	}

	switch f.Op {
	case nt.And, nt.Or:
		var preds []Predicate
		preds, err = compileChildren(f.Children)
		if err != nil || len(preds) == 0 {
			return
		}
		if f.Op == nt.And {
			pred = AllOf(preds...)
		} else {
			pred = AnyOf(preds...)
		}
		return

	case nt.Not:
		var preds []Predicate
		preds, err = compileChildren(f.Children)
		if err != nil || len(preds) == 0 {
			return
		}
		if len(preds) > 1 {
			err = errors.Errorf("not takes one child, got %d", len(preds))
			return
		}
		pred = Not(preds[0])
		return

	case nt.Contains:
		text := valueText(f.Value)
		if len(f.Fields) > 0 {
			pred = Search(text, f.Fields...)
			return
		}
		pred = Contains(f.Field, text)

	case nt.Match:
		pred, err = Matches(f.Field, valueText(f.Value))

	case nt.Choice:
		pred = Choice(f.Field, valueText(f.Value))

	case nt.IsNull:
		pred = Null(f.Field)

	case nt.Eq, nt.Ne, nt.Gt, nt.Gte, nt.Lt, nt.Lte:
		pred = Cmp(f.Field, f.Op, f.Value)

	default:
		err = errors.Errorf("unknown filter op %d", f.Op)
	}

	if err == nil && pred != nil && f.Field == "" && len(f.Fields) == 0 {
		err = errors.Errorf("filter %s needs a field", f.Op)
		pred = nil
	}
	return
}

// CompileSlots compiles filters into slots keyed by slot name.
func CompileSlots(filters []nt.Filter) (slots Slots, err error) {

	slots = Slots{}
	for _, f := range filters {
		name := f.SlotName()
		if name == "" {
			err = errors.Errorf("filter %s has no slot or field", f.Op)
			return nil, err
		}
		if _, taken := slots[name]; taken {
			err = errors.Errorf("duplicate filter slot %q", name)
			return nil, err
		}

		var pred Predicate
		pred, err = Compile(f)
		if err != nil {
			err = errors.Wrapf(err, "failed to compile filter for slot %q", name)
			return nil, err
		}
		slots[name] = pred
	}

	return
}

func compileChildren(children []nt.Filter) (preds []Predicate, err error) {

	for _, child := range children {
		var pred Predicate
		pred, err = Compile(child)
		if err != nil {
			return
		}
		if pred != nil {
			preds = append(preds, pred)
		}
	}
	return
}

func valueText(val any) string {
	if val == nil {
		return ""
	}
	return fmt.Sprintf("%v", val)
}
