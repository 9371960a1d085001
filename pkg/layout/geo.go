package layout

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// Projection names a map projection.
type Projection string

const (
	Mercator        Projection = "mercator"
	Equirectangular Projection = "equirectangular"
)

// maxMercatorLat keeps Mercator y finite.
const maxMercatorLat = 85.05112878

// ParseProjection validates a projection name. The empty string means Mercator.
func ParseProjection(s string) (Projection, error) {
	switch Projection(s) {
	case "", Mercator:
		return Mercator, nil
	case Equirectangular:
		return Equirectangular, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown projection %q", s)
}

func (p Projection) raw() orb.Projection {
	if p == Equirectangular {
		return func(pt orb.Point) orb.Point { return pt }
	}
	return func(pt orb.Point) orb.Point {
		lat := math.Max(-maxMercatorLat, math.Min(maxMercatorLat, pt.Lat()))
		return project.WGS84.ToMercator(orb.Point{pt.Lon(), lat})
	}
}

// Projector maps longitude/latitude to pixels inside a box with the y axis
// pointing down. Build one with [Fit].
type Projector struct {
	raw    orb.Projection
	origin orb.Point // projected (min x, max y)
	k      float64
	dx, dy float64
}

// Fit returns a projector that scales bound uniformly to fit a width x
// height box and centers it. An empty or single-point bound is centered at
// scale 1.
func Fit(p Projection, bound orb.Bound, width, height float64) (*Projector, error) {
	if _, err := ParseProjection(string(p)); err != nil {
		return nil, err
	}
	raw := p.raw()
	lo, hi := raw(bound.Min), raw(bound.Max)
	w, h := hi.X()-lo.X(), hi.Y()-lo.Y()

	k := 1.0
	switch {
	case w > 0 && h > 0:
		k = math.Min(width/w, height/h)
	case w > 0:
		k = width / w
	case h > 0:
		k = height / h
	}
	return &Projector{
		raw:    raw,
		origin: orb.Point{lo.X(), hi.Y()},
		k:      k,
		dx:     (width - w*k) / 2,
		dy:     (height - h*k) / 2,
	}, nil
}

// Point projects one longitude/latitude pair.
func (p *Projector) Point(pt orb.Point) orb.Point {
	q := p.raw(pt)
	return orb.Point{
		(q.X()-p.origin.X())*p.k + p.dx,
		(p.origin.Y()-q.Y())*p.k + p.dy,
	}
}

// MultiPolygon projects every ring of mp into a new multipolygon.
func (p *Projector) MultiPolygon(mp orb.MultiPolygon) orb.MultiPolygon {
	out := make(orb.MultiPolygon, len(mp))
	for i, poly := range mp {
		out[i] = make(orb.Polygon, len(poly))
		for j, ring := range poly {
			r := make(orb.Ring, len(ring))
			for k, pt := range ring {
				r[k] = p.Point(pt)
			}
			out[i][j] = r
		}
	}
	return out
}

// Outlines returns the outer ring of each polygon as scene vertices.
// Holes are not drawn; hit testing still honors them.
func Outlines(mp orb.MultiPolygon) [][]scene.Point {
	out := make([][]scene.Point, 0, len(mp))
	for _, poly := range mp {
		if len(poly) == 0 || len(poly[0]) == 0 {
			continue
		}
		ring := poly[0]
		pts := make([]scene.Point, len(ring))
		for i, pt := range ring {
			pts[i] = scene.Point{X: pt.X(), Y: pt.Y()}
		}
		out = append(out, pts)
	}
	return out
}
