package layout

import (
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
)

// Mode selects how stacked values are scaled.
type Mode string

const (
	// Absolute stacks raw values.
	Absolute Mode = "absolute"
	// Relative normalizes each group so the top series ends at 100.
	Relative Mode = "relative"
)

// ParseMode validates a mode name. The empty string means Absolute.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Absolute:
		return Absolute, nil
	case Relative:
		return Relative, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown stack mode %q", s)
}

// StackOptions configures [Stack].
//
// Data comes either in wide form, where each series is a column named in
// Keys, or in long form, where Key names the series of each record and
// Value holds its amount. Keys fixes the series order in both forms; in
// long form it may be empty and the order of first appearance is used.
type StackOptions struct {
	Group data.Accessor
	Keys  []string
	Key   data.Accessor
	Value data.Accessor
	Mode  Mode
}

// StackPoint is one series value within one group.
type StackPoint struct {
	Group      string
	GroupValue data.Value
	Value      float64
	Baseline   float64
	Top        float64
}

// Series is one stacked layer across all groups.
type Series struct {
	Key    string
	Index  int
	Points []StackPoint
}

// Stacked is the output of [Stack].
type Stacked struct {
	Groups []string
	Values []data.Value
	Series []Series
}

// Max returns the largest top over all series.
func (s Stacked) Max() float64 {
	m := 0.0
	for _, ser := range s.Series {
		for _, p := range ser.Points {
			m = max(m, p.Top)
		}
	}
	return m
}

// Stack computes baseline/top pairs per series and group. Groups keep the
// order in which they first appear. A (group, key) pair without a record
// contributes zero. Within a group the first series sits on zero and every
// next series starts at the previous top, so the last top is the group sum
// (or 100 in Relative mode, unless the group sums to zero).
func Stack(records []data.Record, opts StackOptions) (Stacked, error) {
	if opts.Group == nil {
		return Stacked{}, errors.New(errors.ErrCodeInvalidConfig, "stack needs a group accessor")
	}
	wide := opts.Key == nil
	if wide && len(opts.Keys) == 0 {
		return Stacked{}, errors.New(errors.ErrCodeInvalidConfig, "stack needs series keys or a key accessor")
	}
	if !wide && opts.Value == nil {
		return Stacked{}, errors.New(errors.ErrCodeInvalidConfig, "stack in long form needs a value accessor")
	}

	keys := append([]string(nil), opts.Keys...)
	keyIndex := make(map[string]int, len(keys))
	for i, k := range keys {
		keyIndex[k] = i
	}

	var out Stacked
	groupIndex := make(map[string]int)
	var cells [][]float64 // [group][key]

	for row, r := range records {
		gv, err := opts.Group(r)
		if err != nil {
			return Stacked{}, data.AtRow(err, row)
		}
		g := gv.Text()
		gi, ok := groupIndex[g]
		if !ok {
			gi = len(out.Groups)
			groupIndex[g] = gi
			out.Groups = append(out.Groups, g)
			out.Values = append(out.Values, gv)
			cells = append(cells, make([]float64, len(keys)))
		}

		if wide {
			for ki, k := range keys {
				v, err := data.Float(r, data.Get(k))
				if err != nil {
					return Stacked{}, data.AtRow(err, row)
				}
				cells[gi][ki] += v
			}
			continue
		}

		kv, err := opts.Key(r)
		if err != nil {
			return Stacked{}, data.AtRow(err, row)
		}
		k := kv.Text()
		ki, ok := keyIndex[k]
		if !ok {
			if len(opts.Keys) > 0 {
				continue
			}
			ki = len(keys)
			keyIndex[k] = ki
			keys = append(keys, k)
			for i := range cells {
				cells[i] = append(cells[i], 0)
			}
		}
		v, err := data.Float(r, opts.Value)
		if err != nil {
			return Stacked{}, data.AtRow(err, row)
		}
		cells[gi][ki] += v
	}

	out.Series = make([]Series, len(keys))
	for ki, k := range keys {
		out.Series[ki] = Series{Key: k, Index: ki, Points: make([]StackPoint, len(out.Groups))}
	}
	for gi, g := range out.Groups {
		row := cells[gi]
		factor := 1.0
		if opts.Mode == Relative {
			sum := 0.0
			for _, v := range row {
				sum += v
			}
			if sum != 0 {
				factor = 100 / sum
			} else {
				factor = 0
			}
		}
		base := 0.0
		for ki := range keys {
			v := row[ki] * factor
			out.Series[ki].Points[gi] = StackPoint{
				Group:      g,
				GroupValue: out.Values[gi],
				Value:      row[ki],
				Baseline:   base,
				Top:        base + v,
			}
			base += v
		}
	}
	return out, nil
}

// PadGroups appends a copy of the last group under a new label. Areas drawn
// over band positions use it to extend the final segment to the band end.
// It is never applied by [Stack] itself.
func PadGroups(s Stacked, label string, value data.Value) Stacked {
	if len(s.Groups) == 0 {
		return s
	}
	out := Stacked{
		Groups: append(append([]string(nil), s.Groups...), label),
		Values: append(append([]data.Value(nil), s.Values...), value),
		Series: make([]Series, len(s.Series)),
	}
	for i, ser := range s.Series {
		last := ser.Points[len(ser.Points)-1]
		last.Group, last.GroupValue = label, value
		pts := append(append([]StackPoint(nil), ser.Points...), last)
		out.Series[i] = Series{Key: ser.Key, Index: ser.Index, Points: pts}
	}
	return out
}
