// Package chart binds datasets to visual elements.
//
// Every chart variant implements [Chart]. The lifecycle is the same for all
// of them:
//
//  1. [Chart.Initialize] runs once and allocates the element layers.
//  2. [Chart.Update] reads a dataset through the field accessors named in
//     [Config], recomputes scales and layout, and stages the new marks. A
//     failing update leaves the chart exactly as it was.
//  3. [Chart.Render] reconciles the staged marks with the live elements
//     (enter, update, exit) and returns the resulting [scene.Scene]. Calling
//     it again without an update returns the same element set.
//
// Pointer input goes through [Chart.Handle], which returns the hover,
// selection and filter events it caused. [Link] connects charts through an
// [interact.Bus] so that a brush or filter in one chart updates another.
//
// # Variants
//
//   - bar: category counts or sums on a band scale; click to filter
//   - scatter: two numeric fields, optional size and color; hover tooltips
//   - line: one line per series over time; bisect hover, brush focus/context
//   - area: stacked areas in absolute or relative mode
//   - stackedbar: stacked columns per group, absolute or relative; click to filter
//   - heatmap: two categorical axes with a sequential color scale
//   - multiples: a grid of small stacked areas, one per facet
//   - network: node-link diagram laid out by Graphviz
//   - choropleth: GeoJSON regions filled by a sequential color scale
//
// [scene.Scene]: github.com/matzehuels/stackviz/pkg/render/scene.Scene
// [interact.Bus]: github.com/matzehuels/stackviz/pkg/interact.Bus
package chart

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// Chart is a retained-mode visualization component.
type Chart interface {
	// ID identifies the chart instance in events.
	ID() string
	// Kind returns the registry name of the variant.
	Kind() string

	Initialize() error
	Update(ctx context.Context, ds *data.Dataset, cfg Config) error
	Render() (*scene.Scene, error)

	// Handle feeds a pointer event in canvas coordinates.
	Handle(ev interact.PointerEvent) []interact.Event
	// Receive applies an event published by another chart and reports
	// whether the chart changed.
	Receive(ev interact.Event) bool
	// Advance moves running transitions forward and reports whether any
	// are still running.
	Advance(dt time.Duration) bool
}

// Factory creates an uninitialized chart.
type Factory func() Chart

var registry = map[string]Factory{
	KindBar:       func() Chart { return NewBar() },
	KindScatter:   func() Chart { return NewScatter() },
	KindLine:      func() Chart { return NewLine() },
	KindArea:      func() Chart { return NewArea() },
	KindHeatmap:   func() Chart { return NewHeatmap() },
	KindMultiples: func() Chart { return NewMultiples() },
	KindNetwork:   func() Chart { return NewNetwork() },

	KindStackedBar: func() Chart { return NewStackedBar() },
	KindChoropleth: func() Chart { return NewChoropleth() },
}

// Chart kinds.
const (
	KindBar       = "bar"
	KindScatter   = "scatter"
	KindLine      = "line"
	KindArea      = "area"
	KindHeatmap   = "heatmap"
	KindMultiples = "multiples"
	KindNetwork   = "network"

	KindStackedBar = "stackedbar"
	KindChoropleth = "choropleth"
)

// New returns an initialized chart of the given kind.
func New(kind string) (Chart, error) {
	f, ok := registry[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q (valid: %v)", kind, Kinds())
	}
	c := f()
	if err := c.Initialize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Registered reports whether kind names a chart variant.
func Registered(kind string) bool {
	_, ok := registry[kind]
	return ok
}

// Kinds returns the registered chart kinds in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Link delivers every event published on bus to all charts except the one
// that produced it. It returns the subscription ID.
func Link(bus *interact.Bus, charts ...Chart) uuid.UUID {
	return bus.Subscribe("", func(ev interact.Event) {
		for _, c := range charts {
			if c.ID() != ev.Origin() {
				c.Receive(ev)
			}
		}
	})
}
