package data

import (
	"github.com/matzehuels/stackviz/pkg/errors"
)

// Accessor reads one value from a record.
type Accessor func(Record) (Value, error)

// Get returns an accessor for the named field. Records without the field
// fail with MISSING_FIELD. A present but null value is returned as is.
func Get(name string) Accessor {
	return func(r Record) (Value, error) {
		v, ok := r[name]
		if !ok {
			return Null, errors.MissingField(name, -1)
		}
		return v, nil
	}
}

// Const returns an accessor that always yields v.
func Const(v Value) Accessor {
	return func(Record) (Value, error) { return v, nil }
}

// Numbers reads acc from every record as a float.
// Non-numeric values fail with INVALID_DATA.
func Numbers(records []Record, acc Accessor) ([]float64, error) {
	out := make([]float64, len(records))
	for i, r := range records {
		f, err := Float(r, acc)
		if err != nil {
			return nil, AtRow(err, i)
		}
		out[i] = f
	}
	return out, nil
}

// Float reads acc from r as a float.
func Float(r Record, acc Accessor) (float64, error) {
	v, err := acc(r)
	if err != nil {
		return 0, err
	}
	f, ok := v.Float()
	if !ok {
		if v.IsNull() {
			return 0, nil
		}
		return 0, errors.New(errors.ErrCodeInvalidData, "value %q is not numeric", v.Text())
	}
	return f, nil
}

// Texts reads acc from every record as display text.
func Texts(records []Record, acc Accessor) ([]string, error) {
	out := make([]string, len(records))
	for i, r := range records {
		v, err := acc(r)
		if err != nil {
			return nil, AtRow(err, i)
		}
		out[i] = v.Text()
	}
	return out, nil
}

// Distinct returns the distinct texts of acc in first-appearance order.
func Distinct(records []Record, acc Accessor) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for i, r := range records {
		v, err := acc(r)
		if err != nil {
			return nil, AtRow(err, i)
		}
		s := v.Text()
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}

// Extent returns the minimum and maximum of acc over records.
// ok is false when there are no records.
func Extent(records []Record, acc Accessor) (lo, hi float64, ok bool, err error) {
	vals, err := Numbers(records, acc)
	if err != nil {
		return 0, 0, false, err
	}
	if len(vals) == 0 {
		return 0, 0, false, nil
	}
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, true, nil
}

// Group is a run of records sharing one key.
type Group struct {
	Key     string
	Value   Value
	Records []Record
}

// GroupBy partitions records by acc, keeping groups in first-appearance order.
func GroupBy(records []Record, acc Accessor) ([]Group, error) {
	idx := make(map[string]int)
	var out []Group
	for i, r := range records {
		v, err := acc(r)
		if err != nil {
			return nil, AtRow(err, i)
		}
		k := v.Text()
		j, ok := idx[k]
		if !ok {
			j = len(out)
			idx[k] = j
			out = append(out, Group{Key: k, Value: v})
		}
		out[j].Records = append(out[j].Records, r)
	}
	return out, nil
}

// Rollup sums value over each group of key. A nil value counts records.
// Groups keep first-appearance order.
func Rollup(records []Record, key, value Accessor) ([]string, []float64, error) {
	groups, err := GroupBy(records, key)
	if err != nil {
		return nil, nil, err
	}
	keys := make([]string, len(groups))
	sums := make([]float64, len(groups))
	for i, g := range groups {
		keys[i] = g.Key
		if value == nil {
			sums[i] = float64(len(g.Records))
			continue
		}
		vals, err := Numbers(g.Records, value)
		if err != nil {
			return nil, nil, err
		}
		for _, v := range vals {
			sums[i] += v
		}
	}
	return keys, sums, nil
}

// AtRow attaches a record index to a MISSING_FIELD error. Other errors
// pass through unchanged.
func AtRow(err error, row int) error {
	e, ok := err.(*errors.Error)
	if !ok || e.Code != errors.ErrCodeMissingField {
		return err
	}
	if fe, ok := e.Cause.(*errors.FieldError); ok {
		return errors.MissingField(fe.Field, row)
	}
	return err
}
