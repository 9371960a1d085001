package chart

import (
	"context"
	"slices"

	"github.com/matzehuels/stackviz/pkg/bind"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

const (
	dotRadius    = 4
	dotMaxRadius = 14
)

// Scatter plots Fields.X against Fields.Y. Fields.Size scales the area of
// each dot and Fields.Color picks its categorical color. When another chart
// publishes a FilterChanged event, only dots whose Color category is
// selected stay visible; the axes keep the full data extent.
type Scatter struct {
	Component
	dots *layer

	x, y   *scale.Linear
	color  *scale.Ordinal[string]
	all    []layout.Mark
	labels []string
	shapes []interact.Shape
	only   []string // nil shows every category
}

// NewScatter returns an uninitialized scatter plot.
func NewScatter() *Scatter { return &Scatter{Component: newComponent(KindScatter)} }

func (c *Scatter) Initialize() error {
	c.dots = c.init("dots")[0]
	c.region.Lookup = func(x, y float64) (interact.Shape, bool) {
		return interact.HitTest(c.shapes, x, y)
	}
	return nil
}

func (c *Scatter) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	f := cfg.Fields
	if err := c.begin(ctx, ds, cfg, f.X, f.Y); err != nil {
		return err
	}
	xacc, yacc := data.Get(f.X), data.Get(f.Y)

	x, err := linearOver(ds.Records, xacc, 0, cfg.InnerWidth(), cfg.Ticks)
	if err != nil {
		return err
	}
	y, err := linearOver(ds.Records, yacc, cfg.InnerHeight(), 0, cfg.Ticks)
	if err != nil {
		return err
	}

	opts := layout.PointOptions{
		X: xacc, Y: yacc,
		Key:      field(f.Key),
		Size:     field(f.Size),
		Category: field(f.Color),
		XScale:   x, YScale: y,
		Radius: dotRadius,
	}
	if opts.Size != nil {
		_, hi, _, err := data.Extent(ds.Records, opts.Size)
		if err != nil {
			return err
		}
		opts.RScale = scale.NewSqrt(0, max(hi, 1e-9), 0, dotMaxRadius).SetClamp(true)
	}
	marks, err := layout.Points(ds.Records, opts)
	if err != nil {
		return err
	}

	var cats []string
	if opts.Category != nil {
		if cats, err = data.Distinct(ds.Records, opts.Category); err != nil {
			return err
		}
	}
	color, err := palette(cfg, cats)
	if err != nil {
		return err
	}
	labels, err := pointLabels(ds.Records, field(f.Label), xacc, yacc)
	if err != nil {
		return err
	}

	if err := stage(cfg.Strict, batch{c.dots, dotMarks(marks, labels, color)}); err != nil {
		return err
	}
	c.commit(ds, cfg)
	c.x, c.y, c.color, c.all, c.labels = x, y, color, marks, labels
	c.restage()
	return nil
}

// Receive applies category filters published by other charts.
func (c *Scatter) Receive(ev interact.Event) bool {
	fc, ok := ev.(interact.FilterChanged)
	if !ok || c.ds == nil || c.cfg.Fields.Color == "" {
		return false
	}
	if slices.Equal(fc.Categories, c.only) {
		return false
	}
	c.only = slices.Clone(fc.Categories)
	c.restage()
	return true
}

func (c *Scatter) restage() {
	var visible []layout.Mark
	var labels []string
	for i, m := range c.all {
		if c.only == nil || slices.Contains(c.only, m.Category) {
			visible = append(visible, m)
			labels = append(labels, c.labels[i])
		}
	}
	c.shapes = make([]interact.Shape, len(visible))
	for i, m := range visible {
		c.shapes[i] = interact.MarkShape(m, labels[i])
	}
	_ = stage(false, batch{c.dots, dotMarks(visible, labels, c.color)})
}

func dotMarks(marks []layout.Mark, labels []string, color *scale.Ordinal[string]) []mark {
	out := make([]mark, len(marks))
	for i, m := range marks {
		out[i] = mark{
			Key:   m.Key,
			Kind:  scene.KindCircle,
			Attrs: bind.Attrs{"x": m.X, "y": m.Y, "r": m.R},
			Enter: bind.Attrs{"r": 0},
			Style: scene.Style{Fill: color.Map(m.Category), Stroke: "#fff", StrokeWidth: 0.5, Opacity: 0.85},
			Title: labels[i],
			Class: []string{"mark", "dot"},
		}
	}
	return out
}

// linearOver returns a nice linear scale over the extent of acc.
func linearOver(records []data.Record, acc data.Accessor, r0, r1 float64, ticks int) (*scale.Linear, error) {
	lo, hi, _, err := data.Extent(records, acc)
	if err != nil {
		return nil, err
	}
	return scale.NewLinear(lo, hi, r0, r1).Nice(ticks), nil
}

// pointLabels returns the label field of each record, or "x, y".
func pointLabels(records []data.Record, label, x, y data.Accessor) ([]string, error) {
	if label != nil {
		return data.Texts(records, label)
	}
	out := make([]string, len(records))
	for i, r := range records {
		xv, err := x(r)
		if err != nil {
			return nil, data.AtRow(err, i)
		}
		yv, err := y(r)
		if err != nil {
			return nil, data.AtRow(err, i)
		}
		out[i] = xv.Text() + ", " + yv.Text()
	}
	return out, nil
}

func (c *Scatter) Render() (*scene.Scene, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	c.flush()
	cfg := c.cfg
	s, plot := c.frame()
	plot.Add(
		Axis{Orient: Left, Length: cfg.InnerHeight(), Ticks: NumberTicks(c.y, cfg.Ticks), Title: cfg.Fields.Y, Grid: cfg.InnerWidth()}.Node(),
		Axis{Orient: Bottom, Length: cfg.InnerWidth(), Offset: cfg.InnerHeight(), Ticks: NumberTicks(c.x, cfg.Ticks), Title: cfg.Fields.X}.Node(),
		c.dots.node(),
	)
	if h, ok := c.region.Hovered(); ok {
		plot.Add(scene.Circle(h.CX, h.CY, h.R+3, scene.Style{Stroke: "#222", StrokeWidth: 1.5}).WithClass("highlight"))
	}
	c.tooltip(plot)
	return s, nil
}
