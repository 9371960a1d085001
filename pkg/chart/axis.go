package chart

import (
	"math"
	"strconv"

	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

// Orient is the side of the plot an axis is drawn on.
type Orient string

const (
	Bottom Orient = "bottom"
	Left   Orient = "left"
)

// Tick is one labelled position along an axis, in plot coordinates.
type Tick struct {
	Pos   float64
	Label string
}

// Axis draws a domain line, tick marks and labels. Bottom axes sit at
// Offset below the plot top, left axes at Offset right of the plot left.
type Axis struct {
	Orient   Orient
	Length   float64
	Offset   float64
	Ticks    []Tick
	Title    string
	TickSize float64
	// Grid draws light lines of this length across the plot when > 0.
	Grid float64
}

const axisColor = "#555"

// Node renders the axis.
func (a Axis) Node() *scene.Node {
	size := a.TickSize
	if size == 0 {
		size = 5
	}
	line := scene.Style{Stroke: axisColor, StrokeWidth: 1}
	label := scene.Style{Fill: "#333", FontSize: 10}
	grid := scene.Style{Stroke: "#e5e5e5", StrokeWidth: 1}

	g := scene.Group("axis-"+string(a.Orient), "axis", string(a.Orient))
	switch a.Orient {
	case Bottom:
		g.Translate(0, a.Offset)
		if a.Grid > 0 {
			for _, t := range a.Ticks {
				g.Add(scene.Line(t.Pos, 0, t.Pos, -a.Grid, grid).WithClass("grid"))
			}
		}
		g.Add(scene.Line(0, 0, a.Length, 0, line).WithClass("domain"))
		for _, t := range a.Ticks {
			g.Add(
				scene.Line(t.Pos, 0, t.Pos, size, line).WithClass("tick"),
				scene.Text(t.Pos, size+11, t.Label, scene.AnchorMiddle, label),
			)
		}
		if a.Title != "" {
			g.Add(scene.Text(a.Length, size+26, a.Title, scene.AnchorEnd, label).WithClass("axis-title"))
		}
	default:
		g.Translate(a.Offset, 0)
		if a.Grid > 0 {
			for _, t := range a.Ticks {
				g.Add(scene.Line(0, t.Pos, a.Grid, t.Pos, grid).WithClass("grid"))
			}
		}
		g.Add(scene.Line(0, 0, 0, a.Length, line).WithClass("domain"))
		for _, t := range a.Ticks {
			g.Add(
				scene.Line(-size, t.Pos, 0, t.Pos, line).WithClass("tick"),
				scene.Text(-size-3, t.Pos+3, t.Label, scene.AnchorEnd, label),
			)
		}
		if a.Title != "" {
			g.Add(scene.Text(0, -8, a.Title, scene.AnchorStart, label).WithClass("axis-title"))
		}
	}
	return g
}

// NumberTicks returns ticks for a continuous scale.
func NumberTicks(s scale.Continuous, n int) []Tick {
	vals := s.Ticks(n)
	out := make([]Tick, len(vals))
	for i, v := range vals {
		out[i] = Tick{Pos: s.Map(v), Label: formatNumber(v)}
	}
	return out
}

// TimeTicks returns calendar aligned ticks for a time scale.
func TimeTicks(s *scale.Time, n int) []Tick {
	ts, layout := s.Ticks(n)
	out := make([]Tick, len(ts))
	for i, t := range ts {
		out[i] = Tick{Pos: s.Map(t), Label: t.Format(layout)}
	}
	return out
}

// BandTicks returns one tick per band, at the band center.
func BandTicks(s *scale.Band) []Tick {
	out := make([]Tick, 0, len(s.Domain()))
	for _, c := range s.Domain() {
		x, _ := s.Center(c)
		out = append(out, Tick{Pos: x, Label: c})
	}
	return out
}

// formatNumber prints v with at most two decimals and no trailing zeros.
func formatNumber(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
