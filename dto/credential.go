package dto

import (
	"time"

	nt "opsdeck/entity"
)

// Credential is vault metadata for a stored login.
// Secret may be present in an export but never becomes part of a record.
type Credential struct {
	Id        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Username  string    `json:"username" validate:"required"`
	Server    string    `json:"server" validate:"omitempty,instance"`
	Type      string    `json:"type" validate:"required,oneof=sql windows service api"`
	Shared    bool      `json:"shared"`
	RotatedAt time.Time `json:"rotated_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Secret    string    `json:"secret,omitempty"`
}

var credentialFields = []nt.Field{
	field("id", nt.String),
	field("name", nt.String),
	field("username", nt.String),
	field("server", nt.String),
	field("type", nt.String),
	field("shared", nt.Bool),
	field("rotated_at", nt.Time),
	field("expires_at", nt.Time),
}

func (cr Credential) Record() nt.Record {
	return nt.Record{
		"id":         val(cr.Id),
		"name":       val(cr.Name),
		"username":   val(cr.Username),
		"server":     val(cr.Server),
		"type":       val(cr.Type),
		"shared":     val(cr.Shared),
		"rotated_at": optTime(cr.RotatedAt),
		"expires_at": optTime(cr.ExpiresAt),
	}
}
