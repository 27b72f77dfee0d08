package dto

import (
	"time"

	nt "opsdeck/entity"
)

// PatchWindow is a scheduled maintenance window for a server.
type PatchWindow struct {
	Id       string    `json:"id" validate:"required"`
	Server   string    `json:"server" validate:"required,instance"`
	Patch    string    `json:"patch" validate:"required"`
	Status   string    `json:"status" validate:"required,oneof=planned approved done cancelled"`
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required,gtfield=Start"`
	Approver string    `json:"approver"`
}

var patchFields = []nt.Field{
	field("id", nt.String),
	field("server", nt.String),
	field("patch", nt.String),
	field("status", nt.String),
	field("start", nt.Time),
	field("end", nt.Time),
	field("approver", nt.String),
}

func (pw PatchWindow) Record() nt.Record {
	return nt.Record{
		"id":       val(pw.Id),
		"server":   val(pw.Server),
		"patch":    val(pw.Patch),
		"status":   val(pw.Status),
		"start":    optTime(pw.Start),
		"end":      optTime(pw.End),
		"approver": val(pw.Approver),
	}
}
