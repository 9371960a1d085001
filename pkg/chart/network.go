package chart

import (
	"context"
	"strconv"

	"github.com/matzehuels/stackviz/pkg/bind"
	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/interact"
	"github.com/matzehuels/stackviz/pkg/layout"
	"github.com/matzehuels/stackviz/pkg/render/scene"
	"github.com/matzehuels/stackviz/pkg/scale"
)

const (
	nodeRadius    = 5
	nodeMaxRadius = 12
	networkPad    = 16
)

// Network draws the graph attached to the dataset as a node-link diagram.
// Positions come from the Graphviz engine named in Config.Engine; nodes are
// colored by group and sized by Size when any node has one.
type Network struct {
	Component
	links *layer
	nodes *layer

	pos    map[string]scene.Point
	shapes []interact.Shape
}

// NewNetwork returns an uninitialized network chart.
func NewNetwork() *Network { return &Network{Component: newComponent(KindNetwork)} }

func (c *Network) Initialize() error {
	ls := c.init("links", "nodes")
	c.links, c.nodes = ls[0], ls[1]
	c.region.Lookup = func(x, y float64) (interact.Shape, bool) {
		return interact.HitTest(c.shapes, x, y)
	}
	return nil
}

func (c *Network) Update(ctx context.Context, ds *data.Dataset, cfg Config) error {
	if err := c.begin(ctx, ds, cfg); err != nil {
		return err
	}
	g := ds.Graph
	if g == nil {
		return errors.New(errors.ErrCodeInvalidData, "network chart needs a graph dataset (nodes and links)")
	}
	if err := g.Validate(); err != nil {
		return err
	}
	pos, err := layout.Network(ctx, g, cfg.Engine, cfg.InnerWidth(), cfg.InnerHeight(), networkPad)
	if err != nil {
		return err
	}

	var groups []string
	seen := make(map[string]bool)
	maxSize := 0.0
	for _, n := range g.Nodes {
		if !seen[n.Group] {
			seen[n.Group] = true
			groups = append(groups, n.Group)
		}
		maxSize = max(maxSize, n.Size)
	}
	color, err := palette(cfg, groups)
	if err != nil {
		return err
	}
	radius := func(data.Node) float64 { return nodeRadius }
	if maxSize > 0 {
		r := scale.NewSqrt(0, maxSize, 2, nodeMaxRadius).SetClamp(true)
		radius = func(n data.Node) float64 { return r.Map(n.Size) }
	}

	nodes := make([]mark, len(g.Nodes))
	shapes := make([]interact.Shape, len(g.Nodes))
	for i, n := range g.Nodes {
		p, rr := pos[n.ID], radius(n)
		label := n.ID
		if n.Label != "" {
			label = n.Label
		}
		nodes[i] = mark{
			Key:   n.ID,
			Kind:  scene.KindCircle,
			Attrs: bind.Attrs{"x": p.X, "y": p.Y, "r": rr},
			Enter: bind.Attrs{"r": 0},
			Style: scene.Style{Fill: color.Map(n.Group), Stroke: "#fff", StrokeWidth: 1.5},
			Title: label,
			Class: []string{"mark", "node"},
		}
		shapes[i] = interact.Shape{Key: n.ID, Index: i, Label: label, CX: p.X, CY: p.Y, R: rr}
	}

	links := make([]mark, len(g.Links))
	for i, l := range g.Links {
		s, t := pos[l.Source], pos[l.Target]
		w := 1.0
		if l.Weight > 0 {
			w = min(1+l.Weight/2, 6)
		}
		links[i] = mark{
			Key:   l.Source + "->" + l.Target + "#" + strconv.Itoa(i),
			Kind:  scene.KindLine,
			Attrs: bind.Attrs{"x": s.X, "y": s.Y, "x2": t.X, "y2": t.Y},
			Style: scene.Style{Stroke: "#999", StrokeWidth: w, Opacity: 0.6},
			Class: []string{"link"},
		}
	}

	if err := stage(cfg.Strict, batch{c.links, links}, batch{c.nodes, nodes}); err != nil {
		return err
	}
	c.commit(ds, cfg)
	c.pos, c.shapes = pos, shapes
	return nil
}

// Position returns the laid out position of a node in plot coordinates.
func (c *Network) Position(id string) (scene.Point, bool) {
	p, ok := c.pos[id]
	return p, ok
}

func (c *Network) Render() (*scene.Scene, error) {
	if err := c.loaded(); err != nil {
		return nil, err
	}
	c.flush()
	s, plot := c.frame()
	plot.Add(c.links.node(), c.nodes.node())
	if h, ok := c.region.Hovered(); ok {
		plot.Add(scene.Circle(h.CX, h.CY, h.R+3, scene.Style{Stroke: "#222", StrokeWidth: 1.5}).WithClass("highlight"))
	}
	c.tooltip(plot)
	return s, nil
}
