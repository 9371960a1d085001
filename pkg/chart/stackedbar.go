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

// StackedBar draws one column per group of Fields.X, split into one
// segment per series. Series are read the same way as for [Area]. In
// relative mode every column reaches 100. Clicking a segment toggles its
// group in the chart's filter.
type StackedBar struct {
	Component
	bars   *layer
	filter *interact.Filter

	stack  layout.Stacked
	x      *scale.Band
	y      *scale.Linear
	color  *scale.Ordinal[string]
	segs   []segment
	shapes []interact.Shape
}

// segment is the rectangle of one series within one group.
type segment struct {
	Group  string
	Series string
	Value  float64
	layout.Box
}

// NewStackedBar returns an uninitialized stacked bar chart.
func NewStackedBar() *StackedBar { return &StackedBar{Component: newComponent(KindStackedBar)} }

func (c *StackedBar) Initialize() error {
	c.bars = c.init("bars")[0]
	c.filter = interact.NewFilter(c.id, nil)
	c.region.Lookup = func(x, y float64) (interact.Shape, bool) {
		return interact.HitTest(c.shapes, x, y)
	}
	c.region.Click = func(s interact.Shape) []interact.Event {
		ev := c.filter.Toggle(c.segs[s.Index].Group)
		c.restage()
		return []interact.Event{ev}
	}
	return nil
}

func (c *StackedBar) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	if err := c.begin(ctx, ds, cfg, cfg.Fields.X); err != nil {
		return err
	}
	st, err := stackRecords(ds, ds.Records, cfg)
	if err != nil {
		return err
	}
	x := scale.NewBand(st.Groups, 0, cfg.InnerWidth()).Padding(cfg.Padding)
	y := stackY(st, cfg, cfg.InnerHeight())
	color, err := palette(cfg, seriesKeys(st))
	if err != nil {
		return err
	}
	segs := stackSegments(st, x, y)
	if err := stage(cfg.Strict, batch{c.bars, segmentMarks(segs, color, nil)}); err != nil {
		return err
	}

	c.commit(ds, cfg)
	c.stack, c.x, c.y, c.color, c.segs = st, x, y, color, segs
	c.shapes = make([]interact.Shape, len(segs))
	for i, s := range segs {
		c.shapes[i] = interact.Shape{Key: s.Key, Index: i, Label: segmentTitle(s), Box: s.Box}
	}
	c.filter.SetCategories(st.Groups)
	c.restage()
	return nil
}

// Stacked returns the stack layout of the last update.
func (c *StackedBar) Stacked() layout.Stacked { return c.stack }

// Filter returns the group selection driven by clicks.
func (c *StackedBar) Filter() *interact.Filter { return c.filter }

func (c *StackedBar) restage() {
	if c.ds == nil {
		return
	}
	_ = stage(false, batch{c.bars, segmentMarks(c.segs, c.color, c.filter)})
}

// stackSegments returns the segments in series order, each spanning
// [Baseline, Top] of its stack point.
func stackSegments(st layout.Stacked, x *scale.Band, y *scale.Linear) []segment {
	var out []segment
	for _, s := range st.Series {
		for gi, p := range s.Points {
			left, ok := x.Map(st.Groups[gi])
			if !ok {
				continue
			}
			y0, y1 := y.Map(p.Baseline), y.Map(p.Top)
			out = append(out, segment{
				Group:  st.Groups[gi],
				Series: s.Key,
				Value:  p.Value,
				Box: layout.Box{
					Key:    st.Groups[gi] + "/" + s.Key,
					Left:   left,
					Right:  left + x.Bandwidth(),
					Top:    min(y0, y1),
					Bottom: max(y0, y1),
				},
			})
		}
	}
	return out
}

func segmentTitle(s segment) string {
	return s.Group + " " + s.Series + ": " + formatNumber(s.Value)
}

func segmentMarks(segs []segment, color *scale.Ordinal[string], f *interact.Filter) []mark {
	filtering := f != nil && f.State().Categories != nil
	out := make([]mark, len(segs))
	for i, s := range segs {
		m := mark{
			Key:   s.Key,
			Kind:  scene.KindRect,
			Attrs: bind.Attrs{"x": s.Left, "y": s.Top, "w": s.Width(), "h": s.Height()},
			Enter: bind.Attrs{"y": s.Bottom, "h": 0},
			Style: scene.Style{Fill: color.Map(s.Series), Stroke: "#fff", StrokeWidth: 0.5},
			Title: segmentTitle(s),
			Class: []string{"mark", "bar", "segment"},
		}
		if filtering {
			if f.Selected(s.Group) {
				m.Class = append(m.Class, "active")
			} else {
				m.Attrs["opacity"] = 0.4
			}
		}
		out[i] = m
	}
	return out
}

func (c *StackedBar) Render() (*scene.Scene, error) {
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
