package chart

import (
	"github.com/matzehuels/stackviz/pkg/bind"
	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// mark is the datum bound to one element of a layer. Numeric geometry lives
// in Attrs so that it can be interpolated; everything else snaps.
//
// Attrs keys by kind:
//
//	rect    x y w h
//	circle  x y r
//	line    x y x2 y2
//	text    x y
//	path    (points are not interpolated)
//
// All kinds honor "opacity".
type mark struct {
	Key   string
	Kind  scene.Kind
	Attrs bind.Attrs
	// Enter overrides Attrs for the first frame of an entering element.
	Enter bind.Attrs

	Points []scene.Point
	Closed bool
	Text   string
	Anchor scene.Anchor
	Style  scene.Style
	Title  string
	Class  []string
}

func markKey(m mark) string { return m.Key }

// layer is one keyed set of elements.
type layer struct {
	name    string
	sel     *bind.Selection[mark]
	strict  bool
	pending []mark
	staged  bool
}

func newLayer(name string) *layer {
	return &layer{name: name, sel: bind.NewSelection(markKey)}
}

func (l *layer) configure(cfg Config) {
	l.strict = cfg.Strict
	l.sel.SetDuration(cfg.Transition)
	if cfg.Strict {
		l.sel.SetOptions(bind.Strict())
	} else {
		l.sel.SetOptions()
	}
}

// batch pairs a layer with the marks it should show next.
type batch struct {
	l     *layer
	marks []mark
}

// stage validates every batch and, only if all pass, queues them for the
// next render.
func stage(strict bool, batches ...batch) error {
	if strict {
		for _, b := range batches {
			if _, err := bind.Reconcile(nil, b.marks, markKey, bind.Strict()); err != nil {
				return err
			}
		}
	}
	for _, b := range batches {
		b.l.pending, b.l.staged = b.marks, true
	}
	return nil
}

// flush joins the staged marks. Without a staged update it does nothing,
// so repeated renders see the same elements.
func (l *layer) flush() {
	if !l.staged {
		return
	}
	_, err := l.sel.Join(l.pending, bind.Callbacks[mark]{
		OnEnter: func(e *element) {
			e.To = opaque(e.Datum.Attrs)
			from := merge(e.To, bind.Attrs{"opacity": 0})
			if e.Datum.Enter != nil {
				from = merge(e.To, e.Datum.Enter)
			}
			e.From = from
		},
		OnUpdate: func(e *element) {
			e.To = opaque(e.Datum.Attrs)
		},
		OnExit: func(e *element) {
			e.To = merge(e.From, bind.Attrs{"opacity": 0})
		},
	})
	if err != nil {
		// Strict batches were checked in stage; keep the old elements.
		return
	}
	l.pending, l.staged = nil, false
}

type element = bind.Element[mark]

func opaque(a bind.Attrs) bind.Attrs {
	if _, ok := a["opacity"]; ok {
		return a
	}
	return merge(a, bind.Attrs{"opacity": 1})
}

func merge(a, b bind.Attrs) bind.Attrs {
	out := make(bind.Attrs, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// node returns the layer as a scene group in element order.
func (l *layer) node() *scene.Node {
	g := scene.Group(l.name, l.name)
	for _, e := range l.sel.Elements() {
		if n := l.element(e); n != nil {
			g.Add(n)
		}
	}
	return g
}

func (l *layer) element(e *element) *scene.Node {
	m, a := e.Datum, e.Current()
	op, ok := a["opacity"]
	if !ok {
		op = 1
	}
	if op <= 0 {
		return nil
	}

	var n *scene.Node
	switch m.Kind {
	case scene.KindRect:
		n = scene.Rect(a["x"], a["y"], a["w"], a["h"], m.Style)
	case scene.KindCircle:
		n = scene.Circle(a["x"], a["y"], a["r"], m.Style)
	case scene.KindLine:
		n = scene.Line(a["x"], a["y"], a["x2"], a["y2"], m.Style)
	case scene.KindText:
		n = scene.Text(a["x"], a["y"], m.Text, m.Anchor, m.Style)
	case scene.KindPath:
		n = scene.Path(m.Points, m.Closed, m.Style)
	default:
		return nil
	}
	if op < 1 {
		base := m.Style.Opacity
		if base == 0 {
			base = 1
		}
		n.Style.Opacity = base * op
	}
	n.ID = l.name + "-" + m.Key
	n.Class = append([]string(nil), m.Class...)
	if e.State == bind.Exiting {
		n.Class = append(n.Class, "exiting")
	}
	n.Title = m.Title
	return n
}

// keys returns the keys of the live, non-exiting elements.
func (l *layer) keys() []string {
	var out []string
	for _, e := range l.sel.Active() {
		out = append(out, e.Key)
	}
	return out
}
