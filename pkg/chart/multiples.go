package chart

import (
	"context"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

const facetHeader = 14

// Multiples draws one small stacked area chart per distinct Fields.Facet,
// laid out in a grid of Config.Columns columns. All cells share the value
// scale and the series colors.
type Multiples struct {
	Component
	areas *layer

	facets []facet
	grid   layout.Grid
	y      *scale.Linear
	color  *scale.Ordinal[string]
}

type facet struct {
	key   string
	stack layout.Stacked
	gx    groupAxis
	box   layout.Box // plot area of the cell, below the header
}

// NewMultiples returns an uninitialized small-multiple grid.
func NewMultiples() *Multiples { return &Multiples{Component: newComponent(KindMultiples)} }

func (c *Multiples) Initialize() error {
	c.areas = c.init("areas")[0]
	c.region.Lookup = c.lookup
	return nil
}

func (c *Multiples) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	if err := c.begin(ctx, ds, cfg, cfg.Fields.X, cfg.Fields.Facet); err != nil {
		return err
	}
	groups, err := data.GroupBy(ds.Records, data.Get(cfg.Fields.Facet))
	if err != nil {
		return err
	}
	grid := layout.FitGrid(len(groups), cfg.Columns, cfg.InnerWidth(), cfg.InnerHeight(), cfg.Gap)

	facets := make([]facet, len(groups))
	top := 0.0
	var keys []string
	seen := make(map[string]bool)
	for i, g := range groups {
		st, err := stackRecords(ds, g.Records, cfg)
		if err != nil {
			return err
		}
		cell := grid.Box(i, g.Key)
		box := layout.Box{Key: g.Key, Left: cell.Left, Right: cell.Right, Top: cell.Top + facetHeader, Bottom: cell.Bottom}
		facets[i] = facet{key: g.Key, stack: st, box: box, gx: newGroupAxis(st, box.Left, box.Right)}
		top = max(top, st.Max())
		for _, k := range seriesKeys(st) {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	if cfg.Mode == layout.Relative {
		top = 100
	}
	y := scale.NewLinear(0, top, 1, 0).Nice(cfg.Ticks)
	color, err := palette(cfg, keys)
	if err != nil {
		return err
	}

	if err := stage(cfg.Strict, batch{c.areas, facetMarks(facets, y, color, cfg.Curve)}); err != nil {
		return err
	}
	c.commit(ds, cfg)
	c.facets, c.grid, c.y, c.color = facets, grid, y, color
	return nil
}

// facetMarks returns the areas of every cell. y maps onto [1, 0] and is
// stretched to each cell's height.
func facetMarks(facets []facet, y *scale.Linear, color *scale.Ordinal[string], curve layout.Curve) []mark {
	var out []mark
	for _, f := range facets {
		cy := y.Copy().SetRange(f.box.Bottom, f.box.Top)
		out = append(out, areaMarks(f.stack, f.gx.pos, cy, color, curve, f.key+"/")...)
	}
	return out
}

// Facets returns the facet keys in grid order.
func (c *Multiples) Facets() []string {
	out := make([]string, len(c.facets))
	for i, f := range c.facets {
		out[i] = f.key
	}
	return out
}

func (c *Multiples) lookup(x, y float64) (interact.Shape, bool) {
	i := c.grid.At(x, y, len(c.facets))
	if i < 0 {
		return interact.Shape{}, false
	}
	f := c.facets[i]
	s, ok := f.gx.lookup(f.stack, x, f.box.Top, f.box.Bottom)
	if !ok {
		return s, false
	}
	s.Key = f.key + "/" + s.Key
	s.Label = f.key + ": " + s.Label
	return s, true
}

func (c *Multiples) Render() (*scene.Scene, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	c.flush()
	s, plot := c.frame()

	frames := scene.Group("facets", "facets")
	for _, f := range c.facets {
		b := f.box
		frames.Add(
			scene.Rect(b.Left, b.Top, b.Width(), b.Height(), scene.Style{Fill: "#fafafa", Stroke: "#ddd"}).WithID("facet-"+f.key),
			scene.Text(b.Left, b.Top-3, f.key, scene.AnchorStart, scene.Style{Fill: "#333", FontSize: 10}).WithClass("facet-label"),
		)
	}
	plot.Add(frames, c.areas.node())

	if h, ok := c.region.Hovered(); ok {
		plot.Add(scene.Line(h.Box.Left, h.Box.Top, h.Box.Left, h.Box.Bottom,
			scene.Style{Stroke: "#333", Dash: "3,3"}).WithClass("rule"))
	}
	c.tooltip(plot)
	return s, nil
}
