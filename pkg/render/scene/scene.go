// Package scene defines the drawable primitive tree produced by charts.
//
// A [Scene] is a sized canvas holding a root [Node]. Nodes are groups,
// rectangles, circles, lines, paths and text. Coordinates are in canvas
// units with the origin at the top left. Sinks in package sink turn a scene
// into SVG, PNG, JSON or a terminal cell grid; charts never talk to a
// surface directly.
package scene

import "strings"

// Kind is the primitive type of a node.
type Kind string

const (
	KindGroup  Kind = "group"
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindPath   Kind = "path"
	KindText   Kind = "text"
)

// Point is a vertex in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Style holds paint attributes. Empty colors mean "not painted".
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"` // 0 means fully opaque
	FontSize    float64 `json:"fontSize,omitempty"`
	Dash        string  `json:"dash,omitempty"`
}

// Node is one primitive. Fields irrelevant to the node's kind are zero.
type Node struct {
	Kind  Kind     `json:"kind"`
	ID    string   `json:"id,omitempty"`
	Class []string `json:"class,omitempty"`

	// Group translation, applied to all children.
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	W  float64 `json:"w,omitempty"`
	H  float64 `json:"h,omitempty"`
	R  float64 `json:"r,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Points []Point `json:"points,omitempty"`
	Closed bool    `json:"closed,omitempty"`

	Text   string `json:"text,omitempty"`
	Anchor Anchor `json:"anchor,omitempty"`

	// Title is a tooltip shown by interactive sinks.
	Title string `json:"title,omitempty"`

	Style    Style   `json:"style"`
	Children []*Node `json:"children,omitempty"`
}

// Scene is a sized canvas.
type Scene struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background string  `json:"background,omitempty"`
	Title      string  `json:"title,omitempty"`
	Root       *Node   `json:"root"`
}

// New returns an empty scene.
func New(width, height float64) *Scene {
	return &Scene{Width: width, Height: height, Root: Group("root")}
}

// Group returns an empty group node.
func Group(id string, class ...string) *Node {
	return &Node{Kind: KindGroup, ID: id, Class: class}
}

// Rect returns a rectangle node.
func Rect(x, y, w, h float64, st Style) *Node {
	return &Node{Kind: KindRect, X: x, Y: y, W: w, H: h, Style: st}
}

// Circle returns a circle node centered at (cx, cy).
func Circle(cx, cy, r float64, st Style) *Node {
	return &Node{Kind: KindCircle, X: cx, Y: cy, R: r, Style: st}
}

// Line returns a straight segment.
func Line(x1, y1, x2, y2 float64, st Style) *Node {
	return &Node{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, Style: st}
}

// Path returns a polyline, closed when closed is true.
func Path(pts []Point, closed bool, st Style) *Node {
	return &Node{Kind: KindPath, Points: pts, Closed: closed, Style: st}
}

// Text returns a text node with its baseline at (x, y).
func Text(x, y float64, text string, anchor Anchor, st Style) *Node {
	return &Node{Kind: KindText, X: x, Y: y, Text: text, Anchor: anchor, Style: st}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Translate sets the group offset and returns n.
func (n *Node) Translate(dx, dy float64) *Node {
	n.DX, n.DY = dx, dy
	return n
}

// WithID sets the node ID and returns n.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithClass appends classes and returns n.
func (n *Node) WithClass(class ...string) *Node {
	n.Class = append(n.Class, class...)
	return n
}

// WithTitle sets the tooltip and returns n.
func (n *Node) WithTitle(title string) *Node {
	n.Title = title
	return n
}

// ClassName joins the classes with spaces.
func (n *Node) ClassName() string {
	return strings.Join(n.Class, " ")
}

// HasClass reports whether n carries class c.
func (n *Node) HasClass(c string) bool {
	for _, x := range n.Class {
		if x == c {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth first in painter order. The
// callback receives the accumulated translation of the node's parents.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(n *Node, dx, dy float64) bool) {
	n.walk(0, 0, fn)
}

func (n *Node) walk(dx, dy float64, fn func(*Node, float64, float64) bool) {
	if !fn(n, dx, dy) {
		return
	}
	dx, dy = dx+n.DX, dy+n.DY
	for _, c := range n.Children {
		c.walk(dx, dy, fn)
	}
}

// Find returns the first node with the given ID.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(x *Node, _, _ float64) bool {
		if found != nil {
			return false
		}
		if x.ID == id {
			found = x
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes of kind k under n, n included.
func (n *Node) Count(k Kind) int {
	c := 0
	n.Walk(func(x *Node, _, _ float64) bool {
		if x.Kind == k {
			c++
		}
		return true
	})
	return c
}

// Leaves returns the number of drawable (non-group) nodes under n.
func (n *Node) Leaves() int {
	c := 0
	n.Walk(func(x *Node, _, _ float64) bool {
		if x.Kind != KindGroup {
			c++
		}
		return true
	})
	return c
}
