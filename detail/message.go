package detail

import nt "opsdeck/entity"

type DetailMsg interface {
	isDetailMsg()
}

func (SizeMsg) isDetailMsg()    {}
func (RecordMsg) isDetailMsg()  {}
func (ColumnsMsg) isDetailMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

type RecordMsg struct {
	Record nt.Record
}

type ColumnsMsg struct {
	Columns []nt.Column
}
