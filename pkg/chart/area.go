package chart

import (
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// Area stacks series over the groups of Fields.X. Series come from the
// columns in Fields.Keys (wide form) or from Fields.Color with amounts in
// Fields.Y (long form). In relative mode every group sums to 100.
type Area struct {
	Component
	areas *layer

	stack layout.Stacked
	gx    groupAxis
	y     *scale.Linear
	color *scale.Ordinal[string]
}

// NewArea returns an uninitialized stacked area chart.
func NewArea() *Area { return &Area{Component: newComponent(KindArea)} }

func (c *Area) Initialize() error {
	c.areas = c.init("areas")[0]
	c.region.Lookup = func(px, _ float64) (interact.Shape, bool) {
		return c.gx.lookup(c.stack, px, 0, c.cfg.InnerHeight())
	}
	return nil
}

func (c *Area) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	if err := c.begin(ctx, ds, cfg, cfg.Fields.X); err != nil {
		return err
	}
	st, err := stackRecords(ds, ds.Records, cfg)
	if err != nil {
		return err
	}
	gx := newGroupAxis(st, 0, cfg.InnerWidth())
	y := stackY(st, cfg, cfg.InnerHeight())
	color, err := palette(cfg, seriesKeys(st))
	if err != nil {
		return err
	}
	if err := stage(cfg.Strict, batch{c.areas, areaMarks(st, gx.pos, y, color, cfg.Curve, "")}); err != nil {
		return err
	}
	c.commit(ds, cfg)
	c.stack, c.gx, c.y, c.color = st, gx, y, color
	return nil
}

// Stacked returns the stack layout of the last update.
func (c *Area) Stacked() layout.Stacked { return c.stack }

func (c *Area) Render() (*scene.Scene, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	c.flush()
	cfg := c.cfg
	s, plot := c.frame()
	plot.Add(
		Axis{Orient: Left, Length: cfg.InnerHeight(), Ticks: NumberTicks(c.y, cfg.Ticks), Title: cfg.Fields.Y, Grid: cfg.InnerWidth()}.Node(),
		c.areas.node(),
		Axis{Orient: Bottom, Length: cfg.InnerWidth(), Offset: cfg.InnerHeight(), Ticks: c.gx.ticks(cfg.Ticks), Title: cfg.Fields.X}.Node(),
	)
	if h, ok := c.region.Hovered(); ok {
		plot.Add(scene.Line(h.Box.Left, 0, h.Box.Left, cfg.InnerHeight(),
			scene.Style{Stroke: "#333", Dash: "3,3"}).WithClass("rule"))
	}
	c.tooltip(plot)
	return s, nil
}

// stackRecords stacks records according to cfg, padding the groups when
// cfg.Pad is set.
func stackRecords(ds *data.Dataset, records []data.Record, cfg Config) (layout.Stacked, error) {
	f := cfg.Fields
	opts := layout.StackOptions{Group: data.Get(f.X), Keys: f.Keys, Mode: cfg.Mode}
	if len(f.Keys) > 0 {
		if err := ds.Require(f.Keys...); err != nil {
			return layout.Stacked{}, err
		}
	} else {
		if f.Color == "" || f.Y == "" {
			return layout.Stacked{}, errors.New(errors.ErrCodeInvalidConfig, "stacked charts need fields.keys, or fields.color and fields.y")
		}
		if err := ds.Require(f.Color, f.Y); err != nil {
			return layout.Stacked{}, err
		}
		opts.Key, opts.Value = data.Get(f.Color), data.Get(f.Y)
	}
	st, err := layout.Stack(records, opts)
	if err != nil {
		return layout.Stacked{}, err
	}
	if cfg.Pad != nil {
		st = layout.PadGroups(st, cfg.Pad.Label, cfg.Pad.Value)
	}
	return st, nil
}

// stackY returns the value scale of a stack: [0, 100] in relative mode.
func stackY(st layout.Stacked, cfg Config, height float64) *scale.Linear {
	top := st.Max()
	if cfg.Mode == layout.Relative {
		top = 100
	}
	return scale.NewLinear(0, top, height, 0).Nice(cfg.Ticks)
}

func seriesKeys(st layout.Stacked) []string {
	keys := make([]string, len(st.Series))
	for i, s := range st.Series {
		keys[i] = s.Key
	}
	return keys
}

// areaMarks returns one closed outline per series. prefix namespaces the
// keys when several stacks share a layer.
func areaMarks(st layout.Stacked, xs []float64, y *scale.Linear, color *scale.Ordinal[string], curve layout.Curve, prefix string) []mark {
	out := make([]mark, 0, len(st.Series))
	for _, s := range st.Series {
		y0s, y1s := make([]float64, len(s.Points)), make([]float64, len(s.Points))
		for i, p := range s.Points {
			y0s[i], y1s[i] = y.Map(p.Baseline), y.Map(p.Top)
		}
		out = append(out, mark{
			Key:    prefix + s.Key,
			Kind:   scene.KindPath,
			Points: layout.AreaPath(xs, y0s, y1s, curve),
			Closed: true,
			Style:  scene.Style{Fill: color.Map(s.Key), Stroke: "#fff", StrokeWidth: 0.5},
			Title:  s.Key,
			Class:  []string{"mark", "area"},
		})
	}
	return out
}

// groupAxis places the groups of a stack along a pixel interval. Numeric
// and time groups are positioned by value; anything else is spread evenly.
type groupAxis struct {
	pos    []float64
	order  []int // group indices sorted by position
	sorted []float64
	lin    *scale.Linear
	tx     *scale.Time
	band   []string
}

func newGroupAxis(st layout.Stacked, r0, r1 float64) groupAxis {
	n := len(st.Groups)
	g := groupAxis{pos: make([]float64, n)}

	numeric, times := n > 0, n > 0
	vals := make([]float64, n)
	for i, v := range st.Values {
		f, ok := v.Float()
		numeric = numeric && ok
		times = times && v.Kind() == data.KindTime
		vals[i] = f
	}
	switch {
	case numeric:
		lo, hi := scale.Extent(vals)
		g.lin = scale.NewLinear(lo, hi, r0, r1)
		if times {
			g.tx = scale.NewTime(scale.FromSeconds(lo), scale.FromSeconds(hi), r0, r1)
		}
		for i, v := range vals {
			g.pos[i] = g.lin.Map(v)
		}
	default:
		g.band = st.Groups
		for i := range g.pos {
			if n == 1 {
				g.pos[i] = (r0 + r1) / 2
				continue
			}
			g.pos[i] = r0 + (r1-r0)*float64(i)/float64(n-1)
		}
	}

	g.order = make([]int, n)
	for i := range g.order {
		g.order[i] = i
	}
	slices.SortStableFunc(g.order, func(a, b int) int {
		switch {
		case g.pos[a] < g.pos[b]:
			return -1
		case g.pos[a] > g.pos[b]:
			return 1
		}
		return 0
	})
	g.sorted = make([]float64, n)
	for i, j := range g.order {
		g.sorted[i] = g.pos[j]
	}
	return g
}

func (g groupAxis) ticks(n int) []Tick {
	switch {
	case g.tx != nil:
		return TimeTicks(g.tx, n)
	case g.lin != nil:
		return NumberTicks(g.lin, n)
	}
	out := make([]Tick, len(g.band))
	for i, label := range g.band {
		out[i] = Tick{Pos: g.pos[i], Label: label}
	}
	return out
}

// lookup returns a vertical hit target at the group nearest px. The label
// lists every series value of that group.
func (g groupAxis) lookup(st layout.Stacked, px, top, bottom float64) (interact.Shape, bool) {
	i := interact.Nearest(g.sorted, px)
	if i < 0 {
		return interact.Shape{}, false
	}
	gi := g.order[i]
	parts := []string{st.Groups[gi]}
	for _, s := range st.Series {
		parts = append(parts, s.Key+" "+formatNumber(s.Points[gi].Value))
	}
	x := g.pos[gi]
	return interact.Shape{
		Key:   st.Groups[gi],
		Index: gi,
		Label: strings.Join(parts, "  "),
		Box:   layout.Box{Key: st.Groups[gi], Left: x, Right: x, Top: top, Bottom: bottom},
	}, true
}
