package chart

import (
	"context"

	"github.com/matzehuels/stackviz/pkg/bind"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

const (
	missingColor = "#eeeeee"
	legendSteps  = 10
)

// Heatmap draws a cell for every (Fields.X, Fields.Y) pair, colored by the
// numeric Fields.Color through a sequential scale. Null values are grey.
type Heatmap struct {
	Component
	cells *layer

	x, y   *scale.Band
	seq    *scale.Sequential
	shapes []interact.Shape
}

// NewHeatmap returns an uninitialized heatmap.
func NewHeatmap() *Heatmap { return &Heatmap{Component: newComponent(KindHeatmap)} }

func (c *Heatmap) Initialize() error {
	c.cells = c.init("cells")[0]
	c.region.Lookup = func(x, y float64) (interact.Shape, bool) {
		return interact.HitTest(c.shapes, x, y)
	}
	return nil
}

func (c *Heatmap) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	f := cfg.Fields
	if err := c.begin(ctx, ds, cfg, f.X, f.Y, f.Color); err != nil {
		return err
	}
	xacc, yacc, vacc := data.Get(f.X), data.Get(f.Y), data.Get(f.Color)
	xcats, err := data.Distinct(ds.Records, xacc)
	if err != nil {
		return err
	}
	ycats, err := data.Distinct(ds.Records, yacc)
	if err != nil {
		return err
	}
	x := scale.NewBand(xcats, 0, cfg.InnerWidth()).Padding(cfg.Padding)
	y := scale.NewBand(ycats, 0, cfg.InnerHeight()).Padding(cfg.Padding)

	lo, hi, err := valueExtent(ds.Records, vacc)
	if err != nil {
		return err
	}
	interp, err := scale.Interpolate(cfg.Interpolator, cfg.ColorRange[0], cfg.ColorRange[1])
	if err != nil {
		return err
	}
	seq := scale.NewSequential(lo, hi, interp)

	marks := make([]mark, 0, len(ds.Records))
	shapes := make([]interact.Shape, 0, len(ds.Records))
	for i, r := range ds.Records {
		xv, err := xacc(r)
		if err != nil {
			return data.AtRow(err, i)
		}
		yv, err := yacc(r)
		if err != nil {
			return data.AtRow(err, i)
		}
		vv, err := vacc(r)
		if err != nil {
			return data.AtRow(err, i)
		}
		left, _ := x.Map(xv.Text())
		top, _ := y.Map(yv.Text())
		fill, label := missingColor, xv.Text()+" / "+yv.Text()+": n/a"
		if v, ok := vv.Float(); ok {
			fill, label = seq.MapHex(v), xv.Text()+" / "+yv.Text()+": "+formatNumber(v)
		}
		key := xv.Text() + "|" + yv.Text()
		marks = append(marks, mark{
			Key:   key,
			Kind:  scene.KindRect,
			Attrs: bind.Attrs{"x": left, "y": top, "w": x.Bandwidth(), "h": y.Bandwidth()},
			Style: scene.Style{Fill: fill},
			Title: label,
			Class: []string{"mark", "cell"},
		})
		shapes = append(shapes, interact.Shape{
			Key:   key,
			Index: i,
			Label: label,
			Box:   layout.Box{Key: key, Left: left, Right: left + x.Bandwidth(), Top: top, Bottom: top + y.Bandwidth()},
		})
	}
	if err := stage(cfg.Strict, batch{c.cells, marks}); err != nil {
		return err
	}
	c.commit(ds, cfg)
	c.x, c.y, c.seq, c.shapes = x, y, seq, shapes
	return nil
}

func (c *Heatmap) Render() (*scene.Scene, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	c.flush()
	cfg := c.cfg
	s, plot := c.frame()
	plot.Add(
		c.cells.node(),
		Axis{Orient: Left, Length: cfg.InnerHeight(), Ticks: BandTicks(c.y), Title: cfg.Fields.Y}.Node(),
		Axis{Orient: Bottom, Length: cfg.InnerWidth(), Offset: cfg.InnerHeight(), Ticks: BandTicks(c.x), Title: cfg.Fields.X}.Node(),
		rampLegend(c.seq, cfg.InnerWidth()),
	)
	if h, ok := c.region.Hovered(); ok {
		plot.Add(scene.Rect(h.Box.Left, h.Box.Top, h.Box.Width(), h.Box.Height(),
			scene.Style{Stroke: "#222", StrokeWidth: 1.5}).WithClass("highlight"))
	}
	c.tooltip(plot)
	return s, nil
}

// rampLegend draws the color ramp of seq above the top right corner of a
// plot that is width wide.
func rampLegend(seq *scale.Sequential, width float64) *scene.Node {
	const w, h = 12.0, 8.0
	lo, hi := seq.Domain()
	g := scene.Group("legend", "legend").Translate(width-w*legendSteps, -h-6)
	for i := range legendSteps {
		v := lo + (hi-lo)*float64(i)/float64(legendSteps-1)
		g.Add(scene.Rect(float64(i)*w, 0, w, h, scene.Style{Fill: seq.MapHex(v)}))
	}
	label := scene.Style{Fill: "#333", FontSize: 9}
	g.Add(
		scene.Text(-3, h, formatNumber(lo), scene.AnchorEnd, label),
		scene.Text(w*legendSteps+3, h, formatNumber(hi), scene.AnchorStart, label),
	)
	return g
}

// valueExtent is the extent of acc over records, skipping nulls.
func valueExtent(records []data.Record, acc data.Accessor) (lo, hi float64, err error) {
	seen := false
	for i, r := range records {
		v, err := acc(r)
		if err != nil {
			return 0, 0, data.AtRow(err, i)
		}
		if v.IsNull() {
			continue
		}
		f, ok := v.Float()
		if !ok {
			return 0, 0, errors.New(errors.ErrCodeInvalidData, "row %d: value %q is not numeric", i, v.Text())
		}
		if !seen {
			lo, hi, seen = f, f, true
			continue
		}
		lo, hi = min(lo, f), max(hi, f)
	}
	return lo, hi, nil
}
