package dto

import (
	"time"

	nt "opsdeck/entity"
)

// HealthScore is the latest server-computed health check for a database.
// Score is opaque here; status is derived by the backend.
type HealthScore struct {
	Id        string    `json:"id" validate:"required"`
	Database  string    `json:"database" validate:"required"`
	Server    string    `json:"server" validate:"required,instance"`
	Score     *float64  `json:"score" validate:"omitempty,gte=0,lte=100"`
	Status    string    `json:"status" validate:"required,oneof=ok warning critical unknown"`
	Issues    int       `json:"issues" validate:"gte=0"`
	CheckedAt time.Time `json:"checked_at"`
}

var healthFields = []nt.Field{
	field("id", nt.String),
	field("database", nt.String),
	field("server", nt.String),
	field("score", nt.Number),
	field("status", nt.String),
	field("issues", nt.Number),
	field("checked_at", nt.Time),
}

func (hs HealthScore) Record() nt.Record {

	score := nt.Value{}
	if hs.Score != nil {
		score = val(*hs.Score)
	}

	return nt.Record{
		"id":         val(hs.Id),
		"database":   val(hs.Database),
		"server":     val(hs.Server),
		"score":      score,
		"status":     val(hs.Status),
		"issues":     val(hs.Issues),
		"checked_at": optTime(hs.CheckedAt),
	}
}
