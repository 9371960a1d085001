package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// Cell is one character of a terminal raster.
type Cell struct {
	Rune  rune
	Color string
}

// Term is a scene rasterized to character cells. Each cell covers
// Width/Cols by Height/Rows canvas units.
type Term struct {
	Cols, Rows int
	// ScaleX and ScaleY convert canvas units to cells.
	ScaleX, ScaleY float64
	Cells          [][]Cell
}

const (
	runeFill  = '█'
	runeArea  = '▒'
	runePoint = '●'
	runeTrace = '•'
	runeHLine = '─'
	runeVLine = '│'
)

// RenderTerm rasterizes the scene into cols x rows cells.
func RenderTerm(s *scene.Scene, cols, rows int) *Term {
	t := &Term{Cols: max(cols, 1), Rows: max(rows, 1)}
	t.ScaleX = float64(t.Cols) / math.Max(s.Width, 1)
	t.ScaleY = float64(t.Rows) / math.Max(s.Height, 1)
	t.Cells = make([][]Cell, t.Rows)
	for i := range t.Cells {
		t.Cells[i] = make([]Cell, t.Cols)
		for j := range t.Cells[i] {
			t.Cells[i][j].Rune = ' '
		}
	}
	if s.Root != nil {
		s.Root.Walk(func(n *scene.Node, dx, dy float64) bool {
			t.draw(n, dx, dy)
			return true
		})
	}
	return t
}

// CellOf converts canvas coordinates to a cell position.
func (t *Term) CellOf(x, y float64) (col, row int) {
	return int(math.Floor(x * t.ScaleX)), int(math.Floor(y * t.ScaleY))
}

// Canvas converts the center of a cell back to canvas coordinates.
func (t *Term) Canvas(col, row int) (x, y float64) {
	return (float64(col) + 0.5) / t.ScaleX, (float64(row) + 0.5) / t.ScaleY
}

// String returns the plain characters, one line per row.
func (t *Term) String() string {
	return t.Render(nil)
}

// Render joins the rows, passing each run of equally colored cells through
// paint. A nil paint returns the plain text.
func (t *Term) Render(paint func(color, text string) string) string {
	var b strings.Builder
	for i, row := range t.Cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].Color == row[start].Color {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:j] {
				run.WriteRune(c.Rune)
			}
			if paint != nil && row[start].Color != "" {
				b.WriteString(paint(row[start].Color, run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = j
		}
	}
	return b.String()
}

func (t *Term) set(col, row int, r rune, color string) {
	if row < 0 || row >= t.Rows || col < 0 || col >= t.Cols {
		return
	}
	t.Cells[row][col] = Cell{Rune: r, Color: color}
}

func (t *Term) draw(n *scene.Node, dx, dy float64) {
	st := n.Style
	switch n.Kind {
	case scene.KindRect:
		if _, ok := ParseColor(st.Fill); !ok {
			return
		}
		x, y, w, h := normRect(n.X+dx, n.Y+dy, n.W, n.H)
		c0, r0 := t.CellOf(x, y)
		c1, r1 := t.CellOf(x+w, y+h)
		for r := r0; r <= max(r0, r1-1); r++ {
			for c := c0; c <= max(c0, c1-1); c++ {
				t.set(c, r, runeFill, st.Fill)
			}
		}
	case scene.KindCircle:
		c, r := t.CellOf(n.X+dx, n.Y+dy)
		t.set(c, r, runePoint, firstColor(st.Fill, st.Stroke))
	case scene.KindLine:
		r := runeTrace
		switch {
		case n.Y == n.Y2:
			r = runeHLine
		case n.X == n.X2:
			r = runeVLine
		}
		t.segment(n.X+dx, n.Y+dy, n.X2+dx, n.Y2+dy, r, st.Stroke)
	case scene.KindPath:
		if n.Closed {
			if _, ok := ParseColor(st.Fill); ok {
				t.fillPolygon(n.Points, dx, dy, st.Fill)
				return
			}
		}
		for i := 1; i < len(n.Points); i++ {
			a, b := n.Points[i-1], n.Points[i]
			t.segment(a.X+dx, a.Y+dy, b.X+dx, b.Y+dy, runeTrace, firstColor(st.Stroke, st.Fill))
		}
	case scene.KindText:
		// the glyphs sit half a cell above the baseline
		col, row := t.CellOf(n.X+dx, n.Y+dy-0.5/t.ScaleY)
		runes := []rune(n.Text)
		switch n.Anchor {
		case scene.AnchorMiddle:
			col -= len(runes) / 2
		case scene.AnchorEnd:
			col -= len(runes)
		}
		for i, r := range runes {
			t.set(col+i, row, r, st.Fill)
		}
	}
}

// segment draws a line with Bresenham's algorithm in cell space.
func (t *Term) segment(x0, y0, x1, y1 float64, r rune, color string) {
	c0, r0 := t.CellOf(x0, y0)
	c1, r1 := t.CellOf(x1, y1)
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		t.set(c0, r0, r, color)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// fillPolygon fills cells whose centers lie inside the polygon (even-odd).
func (t *Term) fillPolygon(pts []scene.Point, dx, dy float64, color string) {
	if len(pts) < 3 {
		return
	}
	for row := 0; row < t.Rows; row++ {
		for col := 0; col < t.Cols; col++ {
			x, y := t.Canvas(col, row)
			if insidePolygon(pts, x-dx, y-dy) {
				t.set(col, row, runeArea, color)
			}
		}
	}
}

func insidePolygon(pts []scene.Point, x, y float64) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func firstColor(cs ...string) string {
	for _, c := range cs {
		if _, ok := ParseColor(c); ok {
			return c
		}
	}
	return ""
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
