package dto

import nt "opsdeck/entity"

// Database is one database on a managed instance.
type Database struct {
	Id          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Server      string  `json:"server" validate:"required,instance"`
	Environment string  `json:"environment" validate:"required,oneof=prod staging dev test"`
	Engine      string  `json:"engine" validate:"required,oneof=sqlserver postgres mysql oracle"`
	Version     string  `json:"version"`
	SizeGB      float64 `json:"size_gb" validate:"gte=0"`
	Online      bool    `json:"online"`
	Owner       string  `json:"owner"`
}

var databaseFields = []nt.Field{
	field("id", nt.String),
	field("name", nt.String),
	field("server", nt.String),
	field("environment", nt.String),
	field("engine", nt.String),
	field("version", nt.String),
	field("size_gb", nt.Number),
	field("online", nt.Bool),
	field("owner", nt.String),
}

func (db Database) Record() nt.Record {
	return nt.Record{
		"id":          val(db.Id),
		"name":        val(db.Name),
		"server":      val(db.Server),
		"environment": val(db.Environment),
		"engine":      val(db.Engine),
		"version":     val(db.Version),
		"size_gb":     val(db.SizeGB),
		"online":      val(db.Online),
		"owner":       val(db.Owner),
	}
}
