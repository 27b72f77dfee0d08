package entity

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Direction of a sort directive.
type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

var directionNames = map[Direction]string{
	None:       "none",
	Ascending:  "asc",
	Descending: "desc",
}

func (dir Direction) String() string {
	return directionNames[dir]
}

// Arrow is the header marker for the direction.
func (dir Direction) Arrow() string {
	switch dir {
	case Ascending:
		return "▲"
	case Descending:
		return "▼"
	}
	return ""
}

// MarshalYAML writes the direction by name.
func (dir Direction) MarshalYAML() (any, error) {
	return dir.String(), nil
}

// UnmarshalYAML reads the direction by name.
func (dir *Direction) UnmarshalYAML(node *yaml.Node) error {
	for d, name := range directionNames {
		if node.Value == name {
			*dir = d
			return nil
		}
	}
	return errors.Errorf("unknown sort direction %q at line %d", node.Value, node.Line)
}

// Sort represents a sort directive over a record set.
type Sort struct {
	Field     string    `yaml:"field,omitempty"`
	Direction Direction `yaml:"direction,omitempty"`
}

// Next returns the directive after a sort request on field.
// The same field cycles none, ascending, descending and back to none,
// while a different field starts over at ascending.
func (srt Sort) Next(field string) Sort {

	if field != srt.Field {
		return Sort{Field: field, Direction: Ascending}
	}

	switch srt.Direction {
	case None:
		srt.Direction = Ascending
	case Ascending:
		srt.Direction = Descending
	default:
		srt.Direction = None
	}
	return srt
}

// Active is true when the directive orders records.
func (srt Sort) Active() bool {
	return srt.Field != "" && srt.Direction != None
}
