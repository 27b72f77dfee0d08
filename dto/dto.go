// Package dto holds the record schemas exported by the operations API.
//
// Payloads are decoded and validated here, before any record reaches a
// table, so everything downstream can rely on field names and types.
package dto

import (
	"encoding/json"
	"regexp"
	"slices"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	nt "opsdeck/entity"
)

// Kind names a record schema.
type Kind string

const (
	Databases   Kind = "database"
	Backups     Kind = "backup"
	Health      Kind = "health"
	Credentials Kind = "credential"
	OnCall      Kind = "oncall"
	Patches     Kind = "patch"
)

// Entry is a decoded payload item convertible to a record.
type Entry interface {
	Record() nt.Record
}

type schema struct {
	fields []nt.Field
	decode func(data []byte) ([]nt.Record, error)
}

var schemas = map[Kind]schema{
	Databases:   {fields: databaseFields, decode: decodeAs[Database]},
	Backups:     {fields: backupFields, decode: decodeAs[Backup]},
	Health:      {fields: healthFields, decode: decodeAs[HealthScore]},
	Credentials: {fields: credentialFields, decode: decodeAs[Credential]},
	OnCall:      {fields: onCallFields, decode: decodeAs[Shift]},
	Patches:     {fields: patchFields, decode: decodeAs[PatchWindow]},
}

// instancePattern accepts SERVER or SERVER\INSTANCE names.
var instancePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(\\[A-Za-z0-9_$]+)?$`)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_ = validate.RegisterValidation("instance", func(fl validator.FieldLevel) bool {
		return instancePattern.MatchString(fl.Field().String())
	})
}

// Kinds lists the known schemas, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(schemas))
	for kind := range schemas {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Fields returns the field list of a schema in display order.
func Fields(kind Kind) (fields []nt.Field, err error) {

	sch, ok := schemas[kind]
	if !ok {
		err = errors.Errorf("unknown record kind %q", kind)
		return
	}
	fields = slices.Clone(sch.fields)
	return
}

// Decode reads a JSON array of kind and returns validated records.
// The first invalid entry fails the whole payload.
func Decode(kind Kind, data []byte) (records []nt.Record, err error) {

	sch, ok := schemas[kind]
	if !ok {
		err = errors.Errorf("unknown record kind %q", kind)
		return
	}

	records, err = sch.decode(data)
	err = errors.Wrapf(err, "failed to decode %s records", kind)
	return
}

// Validate checks a single struct against its tags.
func Validate(obj any) error {
	return validate.Struct(obj)
}

func decodeAs[T Entry](data []byte) (records []nt.Record, err error) {

	var entries []T
	err = json.Unmarshal(data, &entries)
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal")
		return
	}

	records = make([]nt.Record, 0, len(entries))
	for i, entry := range entries {
		err = validate.Struct(entry)
		if err != nil {
			err = errors.Wrapf(err, "invalid entry at index %d", i)
			return nil, err
		}
		records = append(records, entry.Record())
	}
	return
}

func val(raw any) nt.Value {
	return nt.Value{Raw: raw}
}

// optTime leaves zero times null so they sort last.
func optTime(t time.Time) nt.Value {
	if t.IsZero() {
		return nt.Value{}
	}
	return nt.Value{Raw: t}
}

func field(name string, kind nt.Kind) nt.Field {
	return nt.Field{Name: name, Type: kind}
}
