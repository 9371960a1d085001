package chart

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/matzehuels/stackviz/pkg/bind"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// Line draws one line per Fields.Group (a single line when empty) of
// Fields.Y over Fields.X. X may be numeric or a time field.
//
// Hovering snaps to the nearest x value. With Config.Brush set, dragging
// across the plot publishes the selected x interval; a line chart that
// receives such a selection zooms its x axis to it (focus and context).
type Line struct {
	Component
	lines  *layer
	labels *layer

	x      *scale.Linear
	tx     *scale.Time // set for time axes
	y      *scale.Linear
	color  *scale.Ordinal[string]
	series []lineSeries
	xs     []float64 // distinct x values, sorted
	xtext  []string
	full   [2]float64
	focus  *[2]float64
}

type lineSeries struct {
	key    string
	xs, ys []float64
}

// NewLine returns an uninitialized line chart.
func NewLine() *Line { return &Line{Component: newComponent(KindLine)} }

func (c *Line) Initialize() error {
	ls := c.init("lines", "labels")
	c.lines, c.labels = ls[0], ls[1]
	c.region.Lookup = c.lookup
	return nil
}

func (c *Line) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	f := cfg.Fields
	if err := c.begin(ctx, ds, cfg, f.X, f.Y); err != nil {
		return err
	}
	xacc, yacc := data.Get(f.X), data.Get(f.Y)
	group := field(f.Group)
	if group == nil {
		group = data.Const(data.String(f.Y))
	}
	groups, err := data.GroupBy(ds.Records, group)
	if err != nil {
		return err
	}

	series := make([]lineSeries, len(groups))
	xtext := make(map[float64]string)
	for i, g := range groups {
		s := lineSeries{key: g.Key}
		for row, r := range g.Records {
			xv, err := xacc(r)
			if err != nil {
				return data.AtRow(err, row)
			}
			xf, err := data.Float(r, xacc)
			if err != nil {
				return data.AtRow(err, row)
			}
			yf, err := data.Float(r, yacc)
			if err != nil {
				return data.AtRow(err, row)
			}
			s.xs, s.ys = append(s.xs, xf), append(s.ys, yf)
			if _, ok := xtext[xf]; !ok {
				xtext[xf] = xv.Text()
			}
		}
		sortPairs(s.xs, s.ys)
		series[i] = s
	}

	xs := make([]float64, 0, len(xtext))
	for v := range xtext {
		xs = append(xs, v)
	}
	slices.Sort(xs)
	labels := make([]string, len(xs))
	for i, v := range xs {
		labels[i] = xtext[v]
	}

	lo, hi := scale.Extent(xs)
	if len(xs) == 0 {
		lo, hi = 0, 1
	}
	ylo, yhi, _, err := data.Extent(ds.Records, yacc)
	if err != nil {
		return err
	}
	y := scale.NewLinear(min(0, ylo), yhi, cfg.InnerHeight(), 0).Nice(cfg.Ticks)

	keys := make([]string, len(series))
	for i, s := range series {
		keys[i] = s.key
	}
	color, err := palette(cfg, keys)
	if err != nil {
		return err
	}

	var tx *scale.Time
	if fd, ok := ds.Field(f.X); ok && fd.Kind == data.KindTime {
		tx = scale.NewTime(scale.FromSeconds(lo), scale.FromSeconds(hi), 0, cfg.InnerWidth())
	}
	x := scale.NewLinear(lo, hi, 0, cfg.InnerWidth())
	if tx == nil {
		x.Nice(cfg.Ticks)
	}

	lines, ends := lineMarks(series, x, y, color, cfg.Curve)
	if err := stage(cfg.Strict, batch{c.lines, lines}, batch{c.labels, ends}); err != nil {
		return err
	}

	c.commit(ds, cfg)
	c.x, c.tx, c.y, c.color = x, tx, y, color
	c.series, c.xs, c.xtext = series, xs, labels
	c.full = [2]float64{lo, hi}
	if c.focus != nil {
		c.restage()
	}
	if cfg.Brush {
		c.region.Brush = interact.NewBrush(c.id, 0, cfg.InnerWidth(), func(px float64) float64 {
			return c.x.Invert(px)
		})
	} else {
		c.region.Brush = nil
	}
	return nil
}

// Receive zooms the x axis to brushed intervals of other charts.
func (c *Line) Receive(ev interact.Event) bool {
	if c.ds == nil {
		return false
	}
	switch ev := ev.(type) {
	case interact.SelectionChanged:
		c.focus = &[2]float64{ev.Lo, ev.Hi}
	case interact.SelectionCleared:
		if c.focus == nil {
			return false
		}
		c.focus = nil
	default:
		return false
	}
	c.restage()
	return true
}

// Domain returns the x domain currently shown.
func (c *Line) Domain() (lo, hi float64) { return c.x.Domain() }

func (c *Line) restage() {
	lo, hi := c.full[0], c.full[1]
	if c.focus != nil {
		lo, hi = c.focus[0], c.focus[1]
	}
	c.x.SetDomain(lo, hi)
	if c.focus == nil && c.tx == nil {
		c.x.Nice(c.cfg.Ticks)
	}
	if c.tx != nil {
		c.tx.SetDomain(scale.FromSeconds(lo), scale.FromSeconds(hi))
	}
	dlo, dhi := c.x.Domain()
	shown := make([]lineSeries, len(c.series))
	for i, s := range c.series {
		xs, ys := clipSeries(s.xs, s.ys, dlo, dhi, c.cfg.Curve)
		shown[i] = lineSeries{key: s.key, xs: xs, ys: ys}
	}
	lines, ends := lineMarks(shown, c.x, c.y, c.color, c.cfg.Curve)
	_ = stage(false, batch{c.lines, lines}, batch{c.labels, ends})
}

func lineMarks(series []lineSeries, x, y *scale.Linear, color *scale.Ordinal[string], curve layout.Curve) (lines, ends []mark) {
	for _, s := range series {
		px, py := make([]float64, len(s.xs)), make([]float64, len(s.ys))
		for i := range s.xs {
			px[i], py[i] = x.Map(s.xs[i]), y.Map(s.ys[i])
		}
		stroke := color.Map(s.key)
		lines = append(lines, mark{
			Key:    s.key,
			Kind:   scene.KindPath,
			Points: layout.LinePath(px, py, curve),
			Style:  scene.Style{Stroke: stroke, StrokeWidth: 1.5},
			Title:  s.key,
			Class:  []string{"mark", "line"},
		})
		if len(series) > 1 && len(px) > 0 {
			n := len(px) - 1
			ends = append(ends, mark{
				Key:   s.key,
				Kind:  scene.KindText,
				Attrs: bind.Attrs{"x": px[n] + 4, "y": py[n] + 3},
				Text:  s.key,
				Style: scene.Style{Fill: stroke, FontSize: 10},
				Class: []string{"series-label"},
			})
		}
	}
	return lines, ends
}

// clipSeries keeps the points inside [lo, hi] and adds interpolated points
// where the line crosses either bound. xs must be sorted.
func clipSeries(xs, ys []float64, lo, hi float64, curve layout.Curve) (cx, cy []float64) {
	at := func(i int, x float64) float64 {
		if curve == layout.CurveStepAfter || xs[i] == xs[i-1] {
			return ys[i-1]
		}
		t := (x - xs[i-1]) / (xs[i] - xs[i-1])
		return ys[i-1] + (ys[i]-ys[i-1])*t
	}
	for i := range xs {
		if i > 0 {
			if xs[i-1] < lo && xs[i] > lo {
				cx, cy = append(cx, lo), append(cy, at(i, lo))
			}
			if xs[i-1] < hi && xs[i] > hi {
				cx, cy = append(cx, hi), append(cy, at(i, hi))
			}
		}
		if xs[i] >= lo && xs[i] <= hi {
			cx, cy = append(cx, xs[i]), append(cy, ys[i])
		}
	}
	return cx, cy
}

// sortPairs sorts xs ascending and permutes ys alongside.
func sortPairs(xs, ys []float64) {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case xs[a] < xs[b]:
			return -1
		case xs[a] > xs[b]:
			return 1
		}
		return 0
	})
	sx, sy := make([]float64, len(xs)), make([]float64, len(ys))
	for i, j := range idx {
		sx[i], sy[i] = xs[j], ys[j]
	}
	copy(xs, sx)
	copy(ys, sy)
}

// lookup snaps to the nearest x value inside the visible domain.
func (c *Line) lookup(px, _ float64) (interact.Shape, bool) {
	lo, hi := c.x.Domain()
	lo, hi = min(lo, hi), max(lo, hi)
	i0 := interact.Bisect(c.xs, lo)
	i1 := sort.Search(len(c.xs), func(k int) bool { return c.xs[k] > hi })
	if i1 <= i0 {
		return interact.Shape{}, false
	}
	j := interact.Nearest(c.xs[i0:i1], c.x.Invert(px))
	if j < 0 {
		return interact.Shape{}, false
	}
	i := i0 + j
	v := c.xs[i]
	parts := []string{c.xtext[i]}
	for _, s := range c.series {
		if j, ok := slices.BinarySearch(s.xs, v); ok {
			parts = append(parts, s.key+" "+formatNumber(s.ys[j]))
		}
	}
	x := c.x.Map(v)
	return interact.Shape{
		Key:   c.xtext[i],
		Index: i,
		Label: strings.Join(parts, "  "),
		Box:   layout.Box{Key: c.xtext[i], Left: x, Right: x, Top: 0, Bottom: c.cfg.InnerHeight()},
	}, true
}

func (c *Line) Render() (*scene.Scene, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	c.flush()
	cfg := c.cfg
	s, plot := c.frame()

	xticks := NumberTicks(c.x, cfg.Ticks)
	if c.tx != nil {
		xticks = TimeTicks(c.tx, cfg.Ticks)
	}
	plot.Add(
		Axis{Orient: Left, Length: cfg.InnerHeight(), Ticks: NumberTicks(c.y, cfg.Ticks), Title: cfg.Fields.Y, Grid: cfg.InnerWidth()}.Node(),
		Axis{Orient: Bottom, Length: cfg.InnerWidth(), Offset: cfg.InnerHeight(), Ticks: xticks, Title: cfg.Fields.X}.Node(),
		c.lines.node(),
		c.labels.node(),
	)
	if len(cfg.Annotations) > 0 {
		plot.Add(c.annotations())
	}
	if b := c.region.Brush; b != nil {
		if lo, hi, ok := b.Selection(); ok {
			plot.Add(scene.Rect(lo, 0, hi-lo, cfg.InnerHeight(),
				scene.Style{Fill: "#777", Opacity: 0.2, Stroke: "#555"}).WithClass("brush"))
		}
	}
	if h, ok := c.region.Hovered(); ok && h.Index >= 0 && h.Index < len(c.xs) {
		focus := scene.Group("focus", "focus")
		x := h.Box.Left
		focus.Add(scene.Line(x, 0, x, cfg.InnerHeight(), scene.Style{Stroke: "#999", Dash: "3,3"}))
		for _, ser := range c.series {
			if j, ok := slices.BinarySearch(ser.xs, c.xs[h.Index]); ok {
				focus.Add(scene.Circle(x, c.y.Map(ser.ys[j]), 4,
					scene.Style{Fill: "none", Stroke: c.color.Map(ser.key), StrokeWidth: 1.5}))
			}
		}
		plot.Add(focus)
	}
	c.tooltip(plot)
	return s, nil
}

// annotations draws the configured notes whose x lies in the shown domain.
func (c *Line) annotations() *scene.Node {
	g := scene.Group("annotations", "annotations")
	lo, hi := c.x.Domain()
	lo, hi = min(lo, hi), max(lo, hi)
	note := scene.Style{Fill: "#333", FontSize: 10}
	for _, a := range c.cfg.Annotations {
		v, ok := a.X.Float()
		if !ok || v < lo || v > hi {
			continue
		}
		x := c.x.Map(v)
		if a.Y != nil {
			y := c.y.Map(*a.Y)
			g.Add(
				scene.Circle(x, y, 12, scene.Style{Fill: "none", Stroke: "#c0392b", StrokeWidth: 1.5}).WithClass("callout"),
				scene.Text(x+16, y+3, a.Label, scene.AnchorStart, note),
			)
			continue
		}
		g.Add(
			scene.Line(x, 0, x, c.cfg.InnerHeight(), scene.Style{Stroke: "#666", Dash: "4,3"}).WithClass("threshold"),
			scene.Text(x, -6, a.Label, scene.AnchorMiddle, note),
		)
	}
	return g
}
