package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/stackviz/pkg/render/scene"
)

const markInteractionCSS = `
    .mark { transition: opacity 0.2s ease, stroke-width 0.2s ease; }
    .mark.dim { opacity: 0.25; }
    .mark.highlight { stroke: #222; stroke-width: 2; }
    .axis text { font-family: sans-serif; }`

const markInteractionJS = `
    const marks = document.querySelectorAll('.mark');
    function highlight(key) {
      marks.forEach(m => {
        m.classList.toggle('highlight', m.dataset.key === key);
        m.classList.toggle('dim', m.dataset.key !== key);
      });
    }
    function clearHighlight() {
      marks.forEach(m => m.classList.remove('highlight', 'dim'));
    }
    marks.forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.key));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	decimals    int
}

// WithInteraction embeds the hover highlighting stylesheet and script.
// Nodes with class "mark" are highlighted by their ID.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithDecimals sets the coordinate precision (default 2).
func WithDecimals(n int) SVGOption { return func(r *svgRenderer) { r.decimals = max(0, n) } }

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{decimals: 2}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Decimals = r.decimals
	canvas.Start(s.Width, s.Height, fmt.Sprintf(`viewBox="0 0 %s %s"`, r.num(s.Width), r.num(s.Height)))
	if s.Title != "" {
		canvas.Title(s.Title)
	}
	if r.interactive {
		canvas.Style("text/css", markInteractionCSS)
	}
	if s.Background != "" {
		canvas.Rect(0, 0, s.Width, s.Height, "fill:"+s.Background)
	}
	if s.Root != nil {
		r.node(canvas, s.Root)
	}
	if r.interactive {
		canvas.Script("application/javascript", markInteractionJS)
	}
	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) node(canvas *svg.SVG, n *scene.Node) {
	if n.Kind == scene.KindGroup {
		attrs := r.identity(n)
		if n.DX != 0 || n.DY != 0 {
			attrs = append(attrs, fmt.Sprintf(`transform="translate(%s,%s)"`, r.num(n.DX), r.num(n.DY)))
		}
		canvas.Group(attrs...)
		if n.Title != "" {
			canvas.Title(n.Title)
		}
		for _, c := range n.Children {
			r.node(canvas, c)
		}
		canvas.Gend()
		return
	}

	// Leaf elements are self-closing, so tooltips need a wrapping group.
	if n.Title != "" {
		canvas.Group()
		canvas.Title(n.Title)
		defer canvas.Gend()
	}

	attrs := r.identity(n)
	switch n.Kind {
	case scene.KindRect:
		x, y, w, h := normRect(n.X, n.Y, n.W, n.H)
		canvas.Rect(x, y, w, h, append(attrs, shapeStyle(n.Style))...)
	case scene.KindCircle:
		canvas.Circle(n.X, n.Y, n.R, append(attrs, shapeStyle(n.Style))...)
	case scene.KindLine:
		canvas.Line(n.X, n.Y, n.X2, n.Y2, append(attrs, strokeStyle(n.Style))...)
	case scene.KindPath:
		if len(n.Points) == 0 {
			return
		}
		st := shapeStyle(n.Style)
		if !n.Closed {
			st = strokeStyle(n.Style)
		}
		canvas.Path(r.pathData(n.Points, n.Closed), append(attrs, st)...)
	case scene.KindText:
		if n.Anchor != "" && n.Anchor != scene.AnchorStart {
			attrs = append(attrs, fmt.Sprintf(`text-anchor="%s"`, n.Anchor))
		}
		if st := textStyle(n.Style); st != "" {
			attrs = append(attrs, st)
		}
		canvas.Text(n.X, n.Y, n.Text, attrs...)
	}
}

// identity returns the id, class and data-key attributes of n.
func (r *svgRenderer) identity(n *scene.Node) []string {
	var attrs []string
	if n.ID != "" {
		attrs = append(attrs, fmt.Sprintf(`id="%s"`, html.EscapeString(n.ID)))
	}
	if len(n.Class) > 0 {
		attrs = append(attrs, fmt.Sprintf(`class="%s"`, html.EscapeString(n.ClassName())))
		if n.HasClass("mark") && n.ID != "" {
			attrs = append(attrs, fmt.Sprintf(`data-key="%s"`, html.EscapeString(n.ID)))
		}
	}
	return attrs
}

func (r *svgRenderer) pathData(pts []scene.Point, closed bool) string {
	var b strings.Builder
	for i, p := range pts {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteString(" L")
		}
		b.WriteString(r.num(p.X))
		b.WriteByte(',')
		b.WriteString(r.num(p.Y))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func (r *svgRenderer) num(v float64) string {
	return strconv.FormatFloat(v, 'f', r.decimals, 64)
}

func normRect(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}

func shapeStyle(st scene.Style) string {
	fill := st.Fill
	if fill == "" {
		fill = "none"
	}
	parts := []string{"fill:" + fill}
	return strings.Join(append(parts, strokeParts(st)...), ";")
}

func strokeStyle(st scene.Style) string {
	parts := []string{"fill:none"}
	if st.Stroke == "" {
		parts = append(parts, "stroke:currentColor")
	}
	return strings.Join(append(parts, strokeParts(st)...), ";")
}

func strokeParts(st scene.Style) []string {
	var parts []string
	if st.Stroke != "" {
		parts = append(parts, "stroke:"+st.Stroke)
	}
	if st.StrokeWidth > 0 {
		parts = append(parts, "stroke-width:"+fmtNum(st.StrokeWidth))
	}
	if st.Dash != "" {
		parts = append(parts, "stroke-dasharray:"+st.Dash)
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		parts = append(parts, "opacity:"+fmtNum(st.Opacity))
	}
	return parts
}

func textStyle(st scene.Style) string {
	var parts []string
	if st.Fill != "" {
		parts = append(parts, "fill:"+st.Fill)
	}
	if st.FontSize > 0 {
		parts = append(parts, "font-size:"+fmtNum(st.FontSize)+"px")
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		parts = append(parts, "opacity:"+fmtNum(st.Opacity))
	}
	return strings.Join(parts, ";")
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
