package interact

import "github.com/matzehuels/stackviz/pkg/layout"

// Region is the interactive plot area of a chart. Box is in surface
// coordinates; Lookup, Brush and Click work in coordinates relative to the
// box's top-left corner.
//
// A Region is owned by a single chart and is not safe for concurrent use.
type Region struct {
	Source string
	Box    layout.Box

	// Lookup finds the record under or nearest to a point.
	Lookup func(x, y float64) (Shape, bool)
	// Brush enables dragging when set.
	Brush *Brush
	// Click handles a press and release without a brush.
	Click func(Shape) []Event

	state   State
	pressed bool
	found   bool
	hover   Shape
}

// State returns the current state.
func (r *Region) State() State { return r.state }

// Hovered returns the highlighted shape, if any.
func (r *Region) Hovered() (Shape, bool) { return r.hover, r.found }

// Reset returns the region to Idle and drops the highlight, any pending
// press and an unfinished drag. Charts call it when their data changes.
func (r *Region) Reset() {
	if r.state == Dragging && r.Brush != nil {
		r.Brush.Clear()
	}
	r.state, r.pressed = Idle, false
	r.found, r.hover = false, Shape{}
}

// Handle advances the state machine and returns the resulting events.
func (r *Region) Handle(ev PointerEvent) []Event {
	x, y := ev.X-r.Box.Left, ev.Y-r.Box.Top
	inside := r.Box.Contains(ev.X, ev.Y)

	switch ev.Kind {
	case PointerEnter, PointerMove:
		switch r.state {
		case Dragging:
			return compact(r.Brush.Move(x))
		case Hovering:
			if !inside {
				return r.leave()
			}
			return r.lookup(x, y)
		case Idle:
			if inside {
				r.state = Hovering
				return r.lookup(x, y)
			}
		}

	case PointerLeave:
		if r.state == Hovering {
			return r.leave()
		}

	case PointerDown:
		if !inside {
			return nil
		}
		if r.Brush != nil {
			out := r.clear()
			r.state = Dragging
			r.Brush.Start(x)
			return out
		}
		r.pressed = true

	case PointerUp:
		if r.state == Dragging {
			out := compact(r.Brush.End(x))
			r.state = Idle
			if inside {
				r.state = Hovering
				out = append(out, r.lookup(x, y)...)
			}
			return out
		}
		if r.pressed {
			r.pressed = false
			if inside && r.Click != nil && r.Lookup != nil {
				if s, ok := r.Lookup(x, y); ok {
					return r.Click(s)
				}
			}
		}
	}
	return nil
}

func (r *Region) lookup(x, y float64) []Event {
	if r.Lookup == nil {
		return nil
	}
	s, ok := r.Lookup(x, y)
	if !ok {
		return r.clear()
	}
	if r.found && s.Key == r.hover.Key && s.Index == r.hover.Index {
		return nil
	}
	r.found, r.hover = true, s
	cx, cy := s.Center()
	return []Event{HoverChanged{
		Source: r.Source,
		Found:  true,
		Index:  s.Index,
		Key:    s.Key,
		Label:  s.Label,
		X:      cx + r.Box.Left,
		Y:      cy + r.Box.Top,
	}}
}

func (r *Region) leave() []Event {
	r.state = Idle
	r.pressed = false
	return r.clear()
}

// clear drops the highlight and reports it once.
func (r *Region) clear() []Event {
	if !r.found {
		return nil
	}
	r.found, r.hover = false, Shape{}
	return []Event{HoverChanged{Source: r.Source, Index: -1}}
}

func compact(evs ...Event) []Event {
	out := evs[:0]
	for _, e := range evs {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
