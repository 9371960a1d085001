package interact

import "math"

// Brush is a one-dimensional range selection along an axis. It works in
// pixels and reports the selection in data units through Invert.
type Brush struct {
	Source string
	// Invert maps a pixel to a data value; nil means identity.
	Invert func(px float64) float64

	lo, hi     float64
	dragging   bool
	start, end float64
	active     bool
}

// NewBrush returns a brush over the pixel extent [lo, hi].
func NewBrush(source string, lo, hi float64, invert func(float64) float64) *Brush {
	b := &Brush{Source: source, Invert: invert}
	b.SetExtent(lo, hi)
	return b
}

// SetExtent changes the pixel extent and drops any selection.
func (b *Brush) SetExtent(lo, hi float64) {
	b.lo, b.hi = math.Min(lo, hi), math.Max(lo, hi)
	b.Clear()
}

// Extent returns the pixel extent.
func (b *Brush) Extent() (lo, hi float64) { return b.lo, b.hi }

// Dragging reports whether a drag is in progress.
func (b *Brush) Dragging() bool { return b.dragging }

// Start begins a drag at px.
func (b *Brush) Start(px float64) {
	px = b.clamp(px)
	b.start, b.end = px, px
	b.dragging = true
}

// Move extends the drag to px and returns the updated selection. It returns
// nil when no drag is in progress or the drag is back at its start; only End
// reports a cleared selection.
func (b *Brush) Move(px float64) Event {
	if !b.dragging {
		return nil
	}
	b.end = b.clamp(px)
	if b.end == b.start {
		b.active = false
		return nil
	}
	return b.publish()
}

// End finishes the drag at px. An empty selection yields SelectionCleared.
func (b *Brush) End(px float64) Event {
	if !b.dragging {
		return nil
	}
	b.end = b.clamp(px)
	b.dragging = false
	return b.publish()
}

// Clear drops the selection.
func (b *Brush) Clear() {
	b.dragging, b.active = false, false
	b.start, b.end = 0, 0
}

// Selection returns the selected pixel interval.
func (b *Brush) Selection() (lo, hi float64, ok bool) {
	if !b.active {
		return 0, 0, false
	}
	return math.Min(b.start, b.end), math.Max(b.start, b.end), true
}

// Domain returns the selection in data units, lo <= hi.
func (b *Brush) Domain() (lo, hi float64, ok bool) {
	p0, p1, ok := b.Selection()
	if !ok {
		return 0, 0, false
	}
	d0, d1 := b.invert(p0), b.invert(p1)
	return math.Min(d0, d1), math.Max(d0, d1), true
}

func (b *Brush) publish() Event {
	b.active = b.start != b.end
	lo, hi, ok := b.Domain()
	if !ok {
		return SelectionCleared{Source: b.Source}
	}
	return SelectionChanged{Source: b.Source, Lo: lo, Hi: hi}
}

func (b *Brush) invert(px float64) float64 {
	if b.Invert == nil {
		return px
	}
	return b.Invert(px)
}

func (b *Brush) clamp(px float64) float64 {
	return math.Max(b.lo, math.Min(b.hi, px))
}
