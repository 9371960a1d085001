package interact

import (
	"math"
	"sort"

	"github.com/matzehuels/stackviz/pkg/layout"
)

// Bisect returns the index of the first value in sorted that is >= x.
func Bisect(sorted []float64, x float64) int {
	return sort.SearchFloat64s(sorted, x)
}

// Nearest returns the index of the value in sorted closest to x, or -1 when
// sorted is empty. When both neighbours are equally far the earlier one wins;
// the later one is chosen only if it is strictly closer.
func Nearest(sorted []float64, x float64) int {
	n := len(sorted)
	if n == 0 || math.IsNaN(x) {
		return -1
	}
	i := Bisect(sorted, x)
	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	}
	if sorted[i]-x < x-sorted[i-1] {
		return i
	}
	return i - 1
}

// Shape is a hit target in surface coordinates: a box, or a circle when R > 0.
type Shape struct {
	Key   string
	Index int
	Label string
	Box   layout.Box
	// Circle targets.
	CX, CY, R float64
}

// BarShape returns the hit target of a bar.
func BarShape(b layout.Bar, label string) Shape {
	return Shape{Key: b.Key, Index: b.Index, Label: label, Box: b.Box}
}

// MarkShape returns the hit target of a scatter mark.
func MarkShape(m layout.Mark, label string) Shape {
	return Shape{Key: m.Key, Index: m.Index, Label: label, CX: m.X, CY: m.Y, R: m.R}
}

// Contains reports whether the point lies inside the shape.
func (s Shape) Contains(x, y float64) bool {
	if s.R > 0 {
		dx, dy := x-s.CX, y-s.CY
		return dx*dx+dy*dy <= s.R*s.R
	}
	return s.Box.Contains(x, y)
}

// Center returns the anchor point for tooltips.
func (s Shape) Center() (float64, float64) {
	if s.R > 0 {
		return s.CX, s.CY
	}
	return s.Box.CenterX(), s.Box.Top
}

// HitTest returns the topmost shape containing the point. Shapes are in
// painter order, so later shapes are on top.
func HitTest(shapes []Shape, x, y float64) (Shape, bool) {
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Contains(x, y) {
			return shapes[i], true
		}
	}
	return Shape{}, false
}
