package layout

import (
	"math"

	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// Curve selects how consecutive vertices are joined.
type Curve string

const (
	CurveLinear    Curve = "linear"
	CurveStepAfter Curve = "step-after"
)

// LinePath returns the vertices of a line through (xs[i], ys[i]).
// Pairs with a NaN coordinate are skipped.
func LinePath(xs, ys []float64, curve Curve) []scene.Point {
	n := min(len(xs), len(ys))
	pts := make([]scene.Point, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		p := scene.Point{X: xs[i], Y: ys[i]}
		if curve == CurveStepAfter && len(pts) > 0 {
			prev := pts[len(pts)-1]
			pts = append(pts, scene.Point{X: p.X, Y: prev.Y})
		}
		pts = append(pts, p)
	}
	return pts
}

// AreaPath returns the closed outline between the top line (xs, y1s) and
// the baseline (xs, y0s): the top left to right, then the baseline right to
// left.
func AreaPath(xs, y0s, y1s []float64, curve Curve) []scene.Point {
	top := LinePath(xs, y1s, curve)
	base := LinePath(xs, y0s, curve)
	pts := make([]scene.Point, 0, len(top)+len(base))
	pts = append(pts, top...)
	for i := len(base) - 1; i >= 0; i-- {
		pts = append(pts, base[i])
	}
	return pts
}
