package data

import (
	"slices"

	"github.com/matzehuels/stackviz/pkg/errors"
)

// Field describes one column of a dataset.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Record is one row of a dataset keyed by field name.
type Record map[string]Value

// Dataset is an ordered, typed record sequence.
type Dataset struct {
	Fields  []Field
	Records []Record
	Graph   *Graph // optional, set by graph loaders
	Geo     *Geo   // optional, set by the GeoJSON loader
}

// New returns a dataset with the given schema and records.
func New(fields []Field, records []Record) *Dataset {
	return &Dataset{Fields: fields, Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Field returns the schema entry for name.
func (d *Dataset) Field(name string) (Field, bool) {
	if d == nil {
		return Field{}, false
	}
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Require checks that every name is part of the schema.
// It fails with MISSING_FIELD on the first unknown name.
func (d *Dataset) Require(names ...string) error {
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := d.Field(n); !ok {
			return errors.MissingField(n, -1)
		}
	}
	return nil
}

// Filter returns a dataset holding the records for which keep returns true.
// The schema, graph and shapes are shared with d.
func (d *Dataset) Filter(keep func(Record) bool) *Dataset {
	out := &Dataset{Fields: d.Fields, Graph: d.Graph, Geo: d.Geo}
	for _, r := range d.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// Clone returns a shallow copy with its own record slice.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	return &Dataset{
		Fields:  slices.Clone(d.Fields),
		Records: slices.Clone(d.Records),
		Graph:   d.Graph,
		Geo:     d.Geo,
	}
}

// SortBy sorts records in place by the value of field. Records missing the
// field sort first. The sort is stable.
func (d *Dataset) SortBy(field string) {
	slices.SortStableFunc(d.Records, func(a, b Record) int {
		va, vb := a[field], b[field]
		switch {
		case va.Less(vb):
			return -1
		case vb.Less(va):
			return 1
		default:
			return 0
		}
	})
}
