package table

import nt "opsdeck/entity"

type TableMsg interface {
	isTableMsg()
}

func (SizeMsg) isTableMsg()    {}
func (PageMsg) isTableMsg()    {}
func (ColumnsMsg) isTableMsg() {}
func (SelectMsg) isTableMsg()  {}

type SizeMsg struct {
	Width  int
	Height int
}

// PageMsg delivers the filtered, sorted records and the directive used
type PageMsg struct {
	Records []nt.Record
	Sort    nt.Sort
}

type ColumnsMsg struct {
	Columns []nt.Column
	Fields  []nt.Field
}

// SelectMsg moves the selection to a 0-indexed row
type SelectMsg struct {
	Row int
}
