package layout

import (
	"math"
	"strconv"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// Bar is one rectangle of a bar chart.
type Bar struct {
	Key   string
	Index int
	Value float64
	Box
}

// Bars places one bar per category. Bars grow from the zero line (clamped
// into the y domain) towards y.Map(value), so negative values hang below it.
func Bars(categories []string, values []float64, x *scale.Band, y scale.Continuous) ([]Bar, error) {
	if len(categories) != len(values) {
		return nil, errors.New(errors.ErrCodeInternal, "bars: %d categories for %d values", len(categories), len(values))
	}
	d0, d1 := y.Domain()
	zero := math.Max(math.Min(d0, d1), math.Min(0, math.Max(d0, d1)))
	base := y.Map(zero)

	out := make([]Bar, 0, len(categories))
	for i, c := range categories {
		left, ok := x.Map(c)
		if !ok {
			continue
		}
		top := y.Map(values[i])
		out = append(out, Bar{
			Key:   c,
			Index: i,
			Value: values[i],
			Box: Box{
				Key:    c,
				Left:   left,
				Right:  left + x.Bandwidth(),
				Top:    math.Min(top, base),
				Bottom: math.Max(top, base),
			},
		})
	}
	return out, nil
}

// Mark is one circle of a scatter plot.
type Mark struct {
	Key      string
	Index    int
	X, Y, R  float64
	Category string
	Record   data.Record
}

// PointOptions configures [Points]. Key, Size and Category are optional.
// Without Key the record index is the key. Without Size every mark has
// radius Radius.
type PointOptions struct {
	X, Y     data.Accessor
	Key      data.Accessor
	Size     data.Accessor
	Category data.Accessor

	XScale scale.Continuous
	YScale scale.Continuous
	RScale scale.Continuous
	Radius float64
}

// Points places one mark per record. Missing fields fail fast.
func Points(records []data.Record, opts PointOptions) ([]Mark, error) {
	if opts.X == nil || opts.Y == nil || opts.XScale == nil || opts.YScale == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "points need x and y accessors and scales")
	}
	out := make([]Mark, len(records))
	for i, r := range records {
		xv, err := data.Float(r, opts.X)
		if err != nil {
			return nil, data.AtRow(err, i)
		}
		yv, err := data.Float(r, opts.Y)
		if err != nil {
			return nil, data.AtRow(err, i)
		}
		m := Mark{
			Index:  i,
			Key:    strconv.Itoa(i),
			X:      opts.XScale.Map(xv),
			Y:      opts.YScale.Map(yv),
			R:      opts.Radius,
			Record: r,
		}
		if opts.Key != nil {
			kv, err := opts.Key(r)
			if err != nil {
				return nil, data.AtRow(err, i)
			}
			m.Key = kv.Text()
		}
		if opts.Size != nil && opts.RScale != nil {
			sv, err := data.Float(r, opts.Size)
			if err != nil {
				return nil, data.AtRow(err, i)
			}
			m.R = opts.RScale.Map(sv)
		}
		if opts.Category != nil {
			cv, err := opts.Category(r)
			if err != nil {
				return nil, data.AtRow(err, i)
			}
			m.Category = cv.Text()
		}
		out[i] = m
	}
	return out, nil
}
