package layout

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// Engine is a Graphviz layout engine.
type Engine string

const (
	// EngineForce is a spring model layout for general networks.
	EngineForce Engine = "fdp"
	// EngineTree is a layered layout for trees and hierarchies.
	EngineTree Engine = "dot"
	// EngineNeato is a stress majorization layout.
	EngineNeato Engine = "neato"
)

// ParseEngine validates an engine name. "force" and "tree" are accepted as
// aliases; the empty string means EngineForce.
func ParseEngine(s string) (Engine, error) {
	switch s {
	case "", "force", string(EngineForce):
		return EngineForce, nil
	case "tree", string(EngineTree):
		return EngineTree, nil
	case string(EngineNeato):
		return EngineNeato, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown network engine %q", s)
}

// Network computes a position for every node of g and fits the drawing into
// a width x height box inset by pad on every side, preserving aspect ratio.
// Nodes are keyed by their ID in the returned map.
func Network(ctx context.Context, g *data.Graph, engine Engine, width, height, pad float64) (map[string]scene.Point, error) {
	if g == nil || len(g.Nodes) == 0 {
		return map[string]scene.Point{}, nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(toDOT(g)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer graph.Close()

	var buf bytes.Buffer
	gv.SetLayout(graphviz.Layout(engine))
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "layout %s", engine)
	}

	raw, err := parsePositions(buf.Bytes(), len(g.Nodes))
	if err != nil {
		return nil, err
	}
	pos := fit(raw, width, height, pad)

	out := make(map[string]scene.Point, len(g.Nodes))
	for i, n := range g.Nodes {
		out[n.ID] = pos[i]
	}
	return out, nil
}

// toDOT writes g with synthetic node names n0..nN so that arbitrary IDs
// never need escaping.
func toDOT(g *data.Graph) string {
	index := make(map[string]int, len(g.Nodes))
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  node [shape=point, width=0.2];\n")
	buf.WriteString("  nodesep=0.4;\n  ranksep=0.6;\n\n")
	for i, n := range g.Nodes {
		index[n.ID] = i
		fmt.Fprintf(&buf, "  n%d;\n", i)
	}
	buf.WriteString("\n")
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", index[l.Source], index[l.Target])
	}
	buf.WriteString("}\n")
	return buf.String()
}

var (
	nodeStmtRe = regexp.MustCompile(`(?m)^\s*n(\d+)\s+\[([^\]]*)\]`)
	posAttrRe  = regexp.MustCompile(`pos="(-?[0-9.e+-]+),(-?[0-9.e+-]+)!?"`)
)

// parsePositions extracts node positions from Graphviz dot output.
func parsePositions(out []byte, n int) ([]scene.Point, error) {
	pts := make([]scene.Point, n)
	found := make([]bool, n)
	for _, m := range nodeStmtRe.FindAllSubmatch(out, -1) {
		i, err := strconv.Atoi(string(m[1]))
		if err != nil || i >= n {
			continue
		}
		pm := posAttrRe.FindSubmatch(m[2])
		if pm == nil {
			continue
		}
		x, errX := strconv.ParseFloat(string(pm[1]), 64)
		y, errY := strconv.ParseFloat(string(pm[2]), 64)
		if errX != nil || errY != nil {
			continue
		}
		// Graphviz has y pointing up.
		pts[i] = scene.Point{X: x, Y: -y}
		found[i] = true
	}
	for i, ok := range found {
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "graphviz returned no position for node %d", i)
		}
	}
	return pts, nil
}

// fit scales pts uniformly into the padded box and centers them.
func fit(pts []scene.Point, width, height, pad float64) []scene.Point {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	w, h := math.Max(0, width-2*pad), math.Max(0, height-2*pad)
	spanX, spanY := maxX-minX, maxY-minY

	k := 0.0
	switch {
	case spanX > 0 && spanY > 0:
		k = math.Min(w/spanX, h/spanY)
	case spanX > 0:
		k = w / spanX
	case spanY > 0:
		k = h / spanY
	}
	offX := pad + (w-spanX*k)/2
	offY := pad + (h-spanY*k)/2

	out := make([]scene.Point, len(pts))
	for i, p := range pts {
		out[i] = scene.Point{X: offX + (p.X-minX)*k, Y: offY + (p.Y-minY)*k}
	}
	return out
}
