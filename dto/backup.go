package dto

import (
	"time"

	nt "opsdeck/entity"
)

// Backup is one backup job run.
type Backup struct {
	Id          string    `json:"id" validate:"required"`
	Database    string    `json:"database" validate:"required"`
	Server      string    `json:"server" validate:"required,instance"`
	Type        string    `json:"type" validate:"required,oneof=full diff log"`
	Status      string    `json:"status" validate:"required,oneof=succeeded failed running"`
	StartedAt   time.Time `json:"started_at" validate:"required"`
	DurationMin float64   `json:"duration_min" validate:"gte=0"`
	SizeGB      float64   `json:"size_gb" validate:"gte=0"`
}

var backupFields = []nt.Field{
	field("id", nt.String),
	field("database", nt.String),
	field("server", nt.String),
	field("type", nt.String),
	field("status", nt.String),
	field("started_at", nt.Time),
	field("duration_min", nt.Number),
	field("size_gb", nt.Number),
}

func (bk Backup) Record() nt.Record {
	return nt.Record{
		"id":           val(bk.Id),
		"database":     val(bk.Database),
		"server":       val(bk.Server),
		"type":         val(bk.Type),
		"status":       val(bk.Status),
		"started_at":   optTime(bk.StartedAt),
		"duration_min": val(bk.DurationMin),
		"size_gb":      val(bk.SizeGB),
	}
}
