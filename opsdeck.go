// Package opsdeck is a terminal dashboard over exported operations records:
// databases, backups, health scores, credentials, on-call shifts and patch
// windows, shown as sortable, filterable tables.
package opsdeck

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"opsdeck/dto"
	nt "opsdeck/entity"
)

// Store specifies a backing datastore.
type Store interface {
	// Name returns the name of the data source
	Name() string
	// Load a file
	Load(ctx context.Context, path string) (err error)
	// Fields of the loaded records
	Fields() (fields []nt.Field)
	// Records returns a full replacement of the record set
	Records(ctx context.Context) (records []nt.Record, err error)
}

// Config is the config file, overridden in part by flags.
type Config struct {
	LogPath string             `yaml:"log_path" validate:"required"`
	MaxLen  int                `yaml:"max_len" validate:"gte=0"`
	Source  string             `yaml:"source"`
	Kind    string             `yaml:"kind" validate:"omitempty,oneof=database backup health credential oncall patch"`
	Layouts map[string]*Layout `yaml:"layouts" validate:"dive"`
}

// Validate checks the config and each layout's filters.
func (cfg *Config) Validate() (err error) {

	err = dto.Validate(cfg)
	if err != nil {
		err = errors.Wrapf(err, "invalid config")
		return
	}

	for name, layout := range cfg.Layouts {
		if layout == nil {
			continue
		}
		_, err = layout.Slots()
		if err != nil {
			err = errors.Wrapf(err, "invalid layout %q", name)
			return
		}
	}
	return
}

// Layout returns the layout named by kind, then "default", then an empty one.
func (cfg *Config) Layout(kind string) *Layout {

	for _, name := range []string{kind, defaultLayout} {
		layout, ok := cfg.Layouts[name]
		if ok && layout != nil {
			return layout
		}
	}
	return &Layout{}
}

const defaultLayout = "default"

// Options are per-run overrides from the command line.
type Options struct {
	Sort    string
	Desc    bool
	Filters []string // field=value
	Search  string
}

// Apply returns a copy of layout with the options applied.
// Each --filter takes the slot named by its field.
func (opts Options) Apply(layout *Layout) (applied *Layout, err error) {

	copied := *layout
	copied.Filters = append([]nt.Filter{}, layout.Filters...)

	if opts.Sort != "" {
		copied.Sort = nt.Sort{Field: opts.Sort, Direction: nt.Ascending}
		if opts.Desc {
			copied.Sort.Direction = nt.Descending
		}
	}

	for _, pair := range opts.Filters {
		field, value, ok := strings.Cut(pair, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			err = errors.Errorf("filter %q is not field=value", pair)
			return
		}

		copied.Filters = setFilter(copied.Filters, nt.Filter{
			Op:      nt.Choice,
			Field:   field,
			Value:   strings.TrimSpace(value),
			Enabled: true,
		})
	}

	applied = &copied
	return
}

// setFilter replaces the filter in the same slot or appends.
func setFilter(filters []nt.Filter, filter nt.Filter) []nt.Filter {
	for i := range filters {
		if filters[i].SlotName() == filter.SlotName() {
			filters[i] = filter
			return filters
		}
	}
	return append(filters, filter)
}
