package chart

import (
	"context"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// Choropleth fills the regions of a GeoJSON dataset by the numeric
// Fields.Color through a sequential scale. Regions are matched to records
// by Fields.Key, "id" when empty. The map is fitted to the plot with
// Config.Projection. Null values are grey.
type Choropleth struct {
	Component
	regions *layer

	proj  *layout.Projector
	seq   *scale.Sequential
	areas []geoArea
}

// geoArea is a projected region used for hit testing.
type geoArea struct {
	key   string
	label string
	shape orb.MultiPolygon
	bound orb.Bound
}

// NewChoropleth returns an uninitialized choropleth map.
func NewChoropleth() *Choropleth { return &Choropleth{Component: newComponent(KindChoropleth)} }

func (c *Choropleth) Initialize() error {
	c.regions = c.init("regions")[0]
	c.region.Lookup = c.lookup
	return nil
}

func (c *Choropleth) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	f := cfg.Fields
	keyField := f.Key
	if keyField == "" {
		keyField = "id"
	}
	if err := c.begin(ctx, ds, cfg, f.Color, keyField); err != nil {
		return err
	}
	if err := ds.Require(f.Label); err != nil {
		return err
	}
	if ds.Geo == nil {
		return errors.New(errors.ErrCodeInvalidData, "choropleth needs GeoJSON input")
	}
	proj, err := layout.Fit(cfg.Projection, ds.Geo.Bound(), cfg.InnerWidth(), cfg.InnerHeight())
	if err != nil {
		return err
	}
	vacc, kacc, lacc := data.Get(f.Color), data.Get(keyField), field(f.Label)

	lo, hi, err := valueExtent(ds.Records, vacc)
	if err != nil {
		return err
	}
	interp, err := scale.Interpolate(cfg.Interpolator, cfg.ColorRange[0], cfg.ColorRange[1])
	if err != nil {
		return err
	}
	seq := scale.NewSequential(lo, hi, interp)

	var marks []mark
	areas := make([]geoArea, 0, len(ds.Records))
	for i, r := range ds.Records {
		kv, err := kacc(r)
		if err != nil {
			return data.AtRow(err, i)
		}
		key := kv.Text()
		feat, ok := ds.Geo.Lookup(key)
		if !ok {
			return errors.New(errors.ErrCodeInvalidData, "row %d: no shape for %q", i, key)
		}
		vv, err := vacc(r)
		if err != nil {
			return data.AtRow(err, i)
		}
		name := key
		if lacc != nil {
			lv, err := lacc(r)
			if err != nil {
				return data.AtRow(err, i)
			}
			name = lv.Text()
		}
		fill, label := missingColor, name+": n/a"
		if v, ok := vv.Float(); ok {
			fill, label = seq.MapHex(v), name+": "+formatNumber(v)
		}

		shape := proj.MultiPolygon(feat.Shape)
		for j, ring := range layout.Outlines(shape) {
			mk := key
			if j > 0 {
				mk = key + "#" + strconv.Itoa(j)
			}
			marks = append(marks, mark{
				Key:    mk,
				Kind:   scene.KindPath,
				Points: ring,
				Closed: true,
				Style:  scene.Style{Fill: fill, Stroke: "#fff", StrokeWidth: 0.5},
				Title:  label,
				Class:  []string{"mark", "region"},
			})
		}
		if len(shape) > 0 {
			areas = append(areas, geoArea{key: key, label: label, shape: shape, bound: shape.Bound()})
		}
	}
	if err := stage(cfg.Strict, batch{c.regions, marks}); err != nil {
		return err
	}
	c.commit(ds, cfg)
	c.proj, c.seq, c.areas = proj, seq, areas
	return nil
}

// lookup returns the topmost region containing the point.
func (c *Choropleth) lookup(x, y float64) (interact.Shape, bool) {
	pt := orb.Point{x, y}
	for i := len(c.areas) - 1; i >= 0; i-- {
		a := c.areas[i]
		if !a.bound.Contains(pt) || !planar.MultiPolygonContains(a.shape, pt) {
			continue
		}
		return interact.Shape{
			Key:   a.key,
			Index: i,
			Label: a.label,
			Box: layout.Box{
				Key:    a.key,
				Left:   a.bound.Min.X(),
				Top:    a.bound.Min.Y(),
				Right:  a.bound.Max.X(),
				Bottom: a.bound.Max.Y(),
			},
		}, true
	}
	return interact.Shape{}, false
}

// Projector returns the projection fitted by the last update.
func (c *Choropleth) Projector() *layout.Projector { return c.proj }

func (c *Choropleth) Render() (*scene.Scene, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	c.flush()
	cfg := c.cfg
	s, plot := c.frame()
	plot.Add(c.regions.node(), rampLegend(c.seq, cfg.InnerWidth()))
	if h, ok := c.region.Hovered(); ok && h.Index >= 0 && h.Index < len(c.areas) {
		hl := scene.Group("highlight", "highlight")
		for _, ring := range layout.Outlines(c.areas[h.Index].shape) {
			hl.Add(scene.Path(ring, true, scene.Style{Stroke: "#222", StrokeWidth: 1.5}))
		}
		plot.Add(hl)
	}
	c.tooltip(plot)
	return s, nil
}
