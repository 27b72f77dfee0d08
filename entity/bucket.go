package entity

// Band is a named lower bound for a numeric bucket.
type Band struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
}

// BucketSpec configures how records are partitioned for summary counts.
// With Bands set, numeric field values fall into the highest band whose Min
// they reach, and into Below otherwise. Without Bands the field value itself
// is the bucket.
type BucketSpec struct {
	Field string `yaml:"field"`
	Bands []Band `yaml:"bands,omitempty"`
	Below string `yaml:"below,omitempty"`
}
