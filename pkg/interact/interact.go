// Package interact turns pointer input into chart events.
//
// A [Region] is the interactive plot area of one chart. It runs a small state
// machine (idle, hovering, dragging) over [PointerEvent] values and returns
// the events that resulted. Hover lookups go through either a direct hit test
// ([HitTest]) or a bisection over sorted axis values ([Nearest]); drags feed a
// [Brush] that inverts the pixel selection into the data domain.
//
// Charts never talk to each other directly. Events are published on a [Bus]
// that sibling charts subscribe to, so a brush on a context chart can rescale
// a focus chart, and a bar click can filter a scatter plot.
package interact

import "fmt"

// PointerKind identifies a pointer event.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerEnter
	PointerLeave
	PointerDown
	PointerUp
)

// String returns the event name as used in logs.
func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerEnter:
		return "enter"
	case PointerLeave:
		return "leave"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	default:
		return fmt.Sprintf("pointer(%d)", int(k))
	}
}

// PointerEvent is a pointer action in surface coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// State is the state of an interactive region.
type State int

const (
	Idle State = iota
	Hovering
	Dragging
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Topic groups events for subscription.
type Topic string

const (
	TopicHover     Topic = "hover"
	TopicSelection Topic = "selection"
	TopicFilter    Topic = "filter"
)

// Event is produced by interaction and dispatched on a Bus.
type Event interface {
	Topic() Topic
	// Origin returns the ID of the chart that produced the event.
	Origin() string
}

// HoverChanged reports the record under the pointer. Found is false when the
// pointer left the region or nothing is close enough.
type HoverChanged struct {
	Source string
	Found  bool
	Index  int
	Key    string
	Label  string
	// X and Y locate the highlighted record in surface coordinates.
	X, Y float64
}

func (HoverChanged) Topic() Topic { return TopicHover }
func (e HoverChanged) Origin() string { return e.Source }

// SelectionChanged carries a brushed interval in data units, Lo <= Hi.
type SelectionChanged struct {
	Source string
	Lo, Hi float64
}

func (SelectionChanged) Topic() Topic { return TopicSelection }
func (e SelectionChanged) Origin() string { return e.Source }

// SelectionCleared reports that a brush was released empty. Listeners reset
// to the full extent.
type SelectionCleared struct {
	Source string
}

func (SelectionCleared) Topic() Topic { return TopicSelection }
func (e SelectionCleared) Origin() string { return e.Source }

// FilterChanged carries the selected categories. A nil slice means no
// filter: every category passes.
type FilterChanged struct {
	Source     string
	Categories []string
}

func (FilterChanged) Topic() Topic { return TopicFilter }
func (e FilterChanged) Origin() string { return e.Source }
