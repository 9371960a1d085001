package sink

import (
	"bytes"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.Color
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithBackground fills the canvas before drawing when the scene has no
// background of its own.
func WithBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes the scene. Text uses the built-in bitmap face, so
// font sizes are not honored.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot rasterize a %vx%v scene", s.Width, s.Height)
	}

	dc := gg.NewContext(w, h)
	bg := r.background
	if c, ok := ParseColor(s.Background); ok {
		bg = c
	}
	if bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)
	dc.SetLineJoinRound()

	if s.Root != nil {
		s.Root.Walk(func(n *scene.Node, dx, dy float64) bool {
			drawNode(dc, n, dx, dy)
			return true
		})
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawNode(dc *gg.Context, n *scene.Node, dx, dy float64) {
	st := n.Style
	switch n.Kind {
	case scene.KindRect:
		x, y, w, h := normRect(n.X+dx, n.Y+dy, n.W, n.H)
		dc.DrawRectangle(x, y, w, h)
		paint(dc, st, true)
	case scene.KindCircle:
		dc.DrawCircle(n.X+dx, n.Y+dy, n.R)
		paint(dc, st, true)
	case scene.KindLine:
		dc.DrawLine(n.X+dx, n.Y+dy, n.X2+dx, n.Y2+dy)
		paint(dc, defaultStroke(st), false)
	case scene.KindPath:
		if len(n.Points) == 0 {
			return
		}
		dc.NewSubPath()
		for i, p := range n.Points {
			if i == 0 {
				dc.MoveTo(p.X+dx, p.Y+dy)
			} else {
				dc.LineTo(p.X+dx, p.Y+dy)
			}
		}
		if n.Closed {
			dc.ClosePath()
			paint(dc, st, true)
		} else {
			paint(dc, defaultStroke(st), false)
		}
	case scene.KindText:
		c, ok := ParseColor(st.Fill)
		if !ok {
			c = color.Black
		}
		dc.SetColor(withOpacity(c, st.Opacity))
		dc.DrawStringAnchored(n.Text, n.X+dx, n.Y+dy, anchorX(n.Anchor), 0)
	}
}

// paint fills and strokes the current path, then clears it.
func paint(dc *gg.Context, st scene.Style, fill bool) {
	if fill {
		if c, ok := ParseColor(st.Fill); ok {
			dc.SetColor(withOpacity(c, st.Opacity))
			dc.FillPreserve()
		}
	}
	if c, ok := ParseColor(st.Stroke); ok {
		dc.SetColor(withOpacity(c, st.Opacity))
		dc.SetLineWidth(max(st.StrokeWidth, 1))
		dc.SetDash(parseDash(st.Dash)...)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func defaultStroke(st scene.Style) scene.Style {
	if st.Stroke == "" {
		st.Stroke = "currentColor"
	}
	return st
}

func anchorX(a scene.Anchor) float64 {
	switch a {
	case scene.AnchorMiddle:
		return 0.5
	case scene.AnchorEnd:
		return 1
	default:
		return 0
	}
}

func parseDash(s string) []float64 {
	var out []float64
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if v, err := strconv.ParseFloat(f, 64); err == nil && v > 0 {
			out = append(out, v)
		}
	}
	return out
}
