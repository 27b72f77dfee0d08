package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Kind classifies the primitive held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	Time
	String
	Other // lists, maps and driver types without a primitive form
)

var kindNames = map[Kind]string{
	Null:   "null",
	Bool:   "bool",
	Number: "number",
	Time:   "time",
	String: "string",
	Other:  "other",
}

func (kind Kind) String() string {
	return kindNames[kind]
}

// Value wraps a field value and provides type conversion helpers.
type Value struct {
	Raw any
}

// Kind reports the primitive kind of the value.
func (v Value) Kind() Kind {
	switch raw := v.Raw.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return Number
	case json.Number:
		if _, err := raw.Float64(); err == nil {
			return Number
		}
		return String
	case time.Time:
		return Time
	case string:
		return String
	default:
		return Other
	}
}

// IsNull is true for absent and nil values.
func (v Value) IsNull() bool {
	return v.Raw == nil
}

// String returns the value as a string.
func (v Value) String() string {
	switch raw := v.Raw.(type) {
	case nil:
		return ""
	case time.Time:
		return raw.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v.Raw)
}

// Int returns the value as an int.
func (v Value) Int() (int, error) {
	f, err := v.Float()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Float returns the value as a float64, for any numeric raw type.
func (v Value) Float() (float64, error) {
	switch raw := v.Raw.(type) {
	case int:
		return float64(raw), nil
	case int8:
		return float64(raw), nil
	case int16:
		return float64(raw), nil
	case int32:
		return float64(raw), nil
	case int64:
		return float64(raw), nil
	case uint:
		return float64(raw), nil
	case uint8:
		return float64(raw), nil
	case uint16:
		return float64(raw), nil
	case uint32:
		return float64(raw), nil
	case uint64:
		return float64(raw), nil
	case float32:
		return float64(raw), nil
	case float64:
		return raw, nil
	case json.Number:
		f, err := raw.Float64()
		return f, errors.Wrapf(err, "value is not numeric: %q", raw)
	}
	return 0, errors.Errorf("value is not a number: %T", v.Raw)
}

// Bool returns the value as a bool.
func (v Value) Bool() (bool, error) {
	b, ok := v.Raw.(bool)
	if !ok {
		return false, errors.Errorf("value is not a bool: %T", v.Raw)
	}
	return b, nil
}

// Time returns the value as a time.Time.
func (v Value) Time() (time.Time, error) {
	t, ok := v.Raw.(time.Time)
	if !ok {
		return time.Time{}, errors.Errorf("value is not a time.Time: %T", v.Raw)
	}
	return t, nil
}

// As converts the value to the kind given, parsing strings where needed.
// Filter values typed by a user arrive as strings and are compared against
// typed record fields this way.
func (v Value) As(kind Kind) (Value, error) {

	if v.Kind() == kind || v.IsNull() {
		return v, nil
	}

	str := v.String()
	switch kind {
	case Number:
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return Value{}, errors.Wrapf(err, "cannot read %q as a number", str)
		}
		return Value{Raw: f}, nil
	case Bool:
		b, err := strconv.ParseBool(str)
		if err != nil {
			return Value{}, errors.Wrapf(err, "cannot read %q as a bool", str)
		}
		return Value{Raw: b}, nil
	case Time:
		for _, layout := range timeLayouts {
			t, err := time.Parse(layout, str)
			if err == nil {
				return Value{Raw: t}, nil
			}
		}
		return Value{}, errors.Errorf("cannot read %q as a time", str)
	case String:
		return Value{Raw: str}, nil
	}
	return v, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}
