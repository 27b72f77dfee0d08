// Package memo is a Store over typed JSON exports, validated as they load.
package memo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"opsdeck/dto"
	nt "opsdeck/entity"
)

// Memo re-reads its export on every Records call so a refresh always sees
// a full replacement of the record set.
type Memo struct {
	kind   dto.Kind
	path   string
	fields []nt.Field
	logger nt.Logger
}

// New creates a Memo for records of kind.
func New(kind dto.Kind, lgr nt.Logger) (mm *Memo, err error) {

	fields, err := dto.Fields(kind)
	if err != nil {
		return
	}

	mm = &Memo{
		kind:   kind,
		fields: fields,
		logger: lgr,
	}
	return
}

// Name returns the export file and kind.
func (mm *Memo) Name() string {
	if mm.path == "" {
		return string(mm.kind)
	}
	return filepath.Base(mm.path) + " (" + string(mm.kind) + ")"
}

// Load checks an export decodes and remembers its path.
func (mm *Memo) Load(ctx context.Context, path string) (err error) {

	mm.path = path
	records, err := mm.Records(ctx)
	if err != nil {
		mm.path = ""
		return
	}

	mm.logger.Info(ctx, "loaded export", "path", path, "kind", mm.kind, "count", len(records))
	return
}

// Fields returns the schema's fields.
func (mm *Memo) Fields() []nt.Field {
	return mm.fields
}

// Records reads, validates and returns the whole export.
func (mm *Memo) Records(ctx context.Context) (records []nt.Record, err error) {

	if mm.path == "" {
		err = errors.New("no export loaded")
		return
	}

	data, err := os.ReadFile(mm.path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read %s", mm.path)
		return
	}

	records, err = dto.Decode(mm.kind, data)
	return
}
