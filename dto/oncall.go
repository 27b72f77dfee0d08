package dto

import (
	"time"

	nt "opsdeck/entity"
)

// Shift is one on-call roster entry. Priority orders escalation.
type Shift struct {
	Id       string    `json:"id" validate:"required"`
	Engineer string    `json:"engineer" validate:"required"`
	Email    string    `json:"email" validate:"required,email"`
	Phone    string    `json:"phone"`
	Tier     int       `json:"tier" validate:"min=1,max=3"`
	Priority int       `json:"priority" validate:"gte=0"`
	From     time.Time `json:"from" validate:"required"`
	To       time.Time `json:"to" validate:"required,gtfield=From"`
}

var onCallFields = []nt.Field{
	field("id", nt.String),
	field("priority", nt.Number),
	field("engineer", nt.String),
	field("email", nt.String),
	field("phone", nt.String),
	field("tier", nt.Number),
	field("from", nt.Time),
	field("to", nt.Time),
}

func (sh Shift) Record() nt.Record {
	return nt.Record{
		"id":       val(sh.Id),
		"priority": val(sh.Priority),
		"engineer": val(sh.Engineer),
		"email":    val(sh.Email),
		"phone":    val(sh.Phone),
		"tier":     val(sh.Tier),
		"from":     optTime(sh.From),
		"to":       optTime(sh.To),
	}
}
