package entity

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FilterOp represents a filter operation type.
type FilterOp int

const (
	// Logical operators
	And FilterOp = iota
	Or
	Not

	// Comparison operators
	Eq       // ==
	Ne       // !=
	Gt       // >
	Gte      // >=
	Lt       // <
	Lte      // <=
	Contains // case-insensitive substring
	Match    // regex match
	Choice   // equality, inactive for "All" or empty
	IsNull   // null or absent
)

// OpNames maps operators to the symbols shown and configured.
var OpNames = map[FilterOp]string{
	And:      "and",
	Or:       "or",
	Not:      "not",
	Eq:       "==",
	Ne:       "!=",
	Gt:       ">",
	Gte:      ">=",
	Lt:       "<",
	Lte:      "<=",
	Contains: "contains",
	Match:    "matches",
	Choice:   "choice",
	IsNull:   "is null",
}

func (op FilterOp) String() string {
	return OpNames[op]
}

// MarshalYAML writes the operator by symbol.
func (op FilterOp) MarshalYAML() (any, error) {
	return op.String(), nil
}

// UnmarshalYAML reads the operator by symbol.
func (op *FilterOp) UnmarshalYAML(node *yaml.Node) error {
	for o, name := range OpNames {
		if node.Value == name {
			*op = o
			return nil
		}
	}
	return errors.Errorf("unknown filter op %q at line %d", node.Value, node.Line)
}

// Filter is the serializable form of a predicate occupying one slot.
// Filters can be simple comparisons or logical combinations of children.
type Filter struct {
	Slot     string   `yaml:"slot,omitempty"`
	Op       FilterOp `yaml:"op"`
	Field    string   `yaml:"field,omitempty"`
	Fields   []string `yaml:"fields,omitempty"` // Contains over any of these
	Value    any      `yaml:"value,omitempty"`
	Enabled  bool     `yaml:"enabled"`
	Children []Filter `yaml:"children,omitempty"`
}

// SlotName is the slot the filter occupies, defaulting to its field.
func (f Filter) SlotName() string {
	if f.Slot != "" {
		return f.Slot
	}
	return f.Field
}
