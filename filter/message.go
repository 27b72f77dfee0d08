package filter

import nt "opsdeck/entity"

type FilterMsg interface {
	isFilterMsg()
}

func (SizeMsg) isFilterMsg() {}
func (LoadMsg) isFilterMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// LoadMsg replaces the panel's filters, as when a layout is applied
type LoadMsg struct {
	Filters []nt.Filter
}
