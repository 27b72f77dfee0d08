package entity

// Column configures how a field is shown in the table.
type Column struct {
	Field  string `yaml:"field" validate:"required"`
	Title  string `yaml:"title,omitempty"`
	Width  int    `yaml:"width" validate:"gte=0"`
	Format string `yaml:"format,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
	Json   bool   `yaml:"json,omitempty"` // string holding JSON, expanded in detail
}

// Heading is the column title, falling back to the field name.
func (col Column) Heading() string {
	if col.Title != "" {
		return col.Title
	}
	return col.Field
}
