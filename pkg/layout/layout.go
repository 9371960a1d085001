// Package layout turns records into geometry.
//
// Generators in this package are pure functions: they read records through
// accessors, map values through scales and return positions. They never keep
// state between calls, so a chart can recompute layout on every update and
// hand the result to the keyed bind step.
//
//   - [Stack] computes baseline/top pairs for stacked areas and bars.
//   - [Grid] places small multiples in rows and columns.
//   - [Bars] and [Points] build per-record rectangles and circles.
//   - [LinePath] and [AreaPath] build vertex lists for paths.
//   - [Network] positions graph nodes with Graphviz.
package layout

// Box is an axis aligned rectangle in canvas units.
type Box struct {
	Key         string
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return (b.Left + b.Right) / 2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return (b.Top + b.Bottom) / 2 }

// Contains reports whether (x, y) lies inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right && y >= b.Top && y <= b.Bottom
}
