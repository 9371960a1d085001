package chart

import (
	"context"

	"github.com/matzehuels/stackviz/pkg/bind"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

const barColor = "#4682b4"

// Bar draws one bar per distinct value of Fields.X. The height is the sum
// of Fields.Y over the category, or the record count when Y is empty.
// Clicking a bar toggles its category in the chart's filter.
type Bar struct {
	Component
	bars   *layer
	filter *interact.Filter

	x      *scale.Band
	y      *scale.Linear
	laid   []layout.Bar
	shapes []interact.Shape
}

// NewBar returns an uninitialized bar chart.
func NewBar() *Bar { return &Bar{Component: newComponent(KindBar)} }

func (c *Bar) Initialize() error {
	c.bars = c.init("bars")[0]
	c.filter = interact.NewFilter(c.id, nil)
	c.region.Lookup = func(x, y float64) (interact.Shape, bool) {
		return interact.HitTest(c.shapes, x, y)
	}
	c.region.Click = func(s interact.Shape) []interact.Event {
		ev := c.filter.Toggle(s.Key)
		c.restage()
		return []interact.Event{ev}
	}
	return nil
}

func (c *Bar) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	if err := c.begin(ctx, ds, cfg, cfg.Fields.X); err != nil {
		return err
	}
	cats, vals, err := data.Rollup(ds.Records, data.Get(cfg.Fields.X), field(cfg.Fields.Y))
	if err != nil {
		return err
	}

	x := scale.NewBand(cats, 0, cfg.InnerWidth()).Padding(cfg.Padding)
	lo, hi := 0.0, 0.0
	for _, v := range vals {
		lo, hi = min(lo, v), max(hi, v)
	}
	y := scale.NewLinear(lo, hi, cfg.InnerHeight(), 0).Nice(cfg.Ticks)
	bars, err := layout.Bars(cats, vals, x, y)
	if err != nil {
		return err
	}
	if err := stage(cfg.Strict, batch{c.bars, barMarks(bars, y, cfg, nil)}); err != nil {
		return err
	}

	c.commit(ds, cfg)
	c.x, c.y, c.laid = x, y, bars
	c.shapes = make([]interact.Shape, len(bars))
	for i, b := range bars {
		c.shapes[i] = interact.BarShape(b, b.Key+": "+formatNumber(b.Value))
	}
	c.filter.SetCategories(cats)
	c.restage()
	return nil
}

// Filter returns the category selection driven by clicks.
func (c *Bar) Filter() *interact.Filter { return c.filter }

func (c *Bar) restage() {
	if c.ds == nil {
		return
	}
	_ = stage(false, batch{c.bars, barMarks(c.laid, c.y, c.cfg, c.filter)})
}

func barMarks(bars []layout.Bar, y *scale.Linear, cfg Config, f *interact.Filter) []mark {
	d0, d1 := y.Domain()
	base := y.Map(max(min(d0, d1), min(0, max(d0, d1))))
	fill := barColor
	if cfg.Fill != "" {
		fill = cfg.Fill
	}
	filtering := f != nil && f.State().Categories != nil

	out := make([]mark, len(bars))
	for i, b := range bars {
		m := mark{
			Key:   b.Key,
			Kind:  scene.KindRect,
			Attrs: bind.Attrs{"x": b.Left, "y": b.Top, "w": b.Width(), "h": b.Height()},
			Enter: bind.Attrs{"y": base, "h": 0},
			Style: scene.Style{Fill: fill},
			Title: b.Key + ": " + formatNumber(b.Value),
			Class: []string{"mark", "bar"},
		}
		if filtering {
			if f.Selected(b.Key) {
				m.Class = append(m.Class, "active")
			} else {
				m.Attrs["opacity"] = 0.4
			}
		}
		out[i] = m
	}
	return out
}

func (c *Bar) Render() (*scene.Scene, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	c.flush()
	cfg := c.cfg
	s, plot := c.frame()
	plot.Add(
		Axis{Orient: Left, Length: cfg.InnerHeight(), Ticks: NumberTicks(c.y, cfg.Ticks), Title: cfg.Fields.Y, Grid: cfg.InnerWidth()}.Node(),
		c.bars.node(),
		Axis{Orient: Bottom, Length: cfg.InnerWidth(), Offset: cfg.InnerHeight(), Ticks: BandTicks(c.x), Title: cfg.Fields.X}.Node(),
	)
	c.tooltip(plot)
	return s, nil
}
