package layout

import "math"

// Grid places cells in row-major order.
type Grid struct {
	Columns int
	CellW   float64
	CellH   float64
	Gap     float64
}

// NewGrid returns a grid with the given column count. Counts below one are
// treated as one.
func NewGrid(columns int) Grid {
	return Grid{Columns: max(1, columns)}
}

// FitGrid sizes the cells of an n-cell grid so that it fills width x height.
func FitGrid(n, columns int, width, height, gap float64) Grid {
	g := NewGrid(columns)
	g.Gap = gap
	rows := g.Rows(n)
	cols := min(g.Columns, max(1, n))
	g.CellW = math.Max(0, (width-gap*float64(cols-1))/float64(cols))
	g.CellH = math.Max(0, (height-gap*float64(rows-1))/float64(max(1, rows)))
	return g
}

// Cell returns the row and column of the i-th cell: i/columns, i%columns.
func (g Grid) Cell(i int) (row, col int) {
	c := max(1, g.Columns)
	return i / c, i % c
}

// Rows returns the number of rows needed for n cells.
func (g Grid) Rows(n int) int {
	c := max(1, g.Columns)
	return (n + c - 1) / c
}

// Origin returns the top-left corner of the i-th cell.
func (g Grid) Origin(i int) (x, y float64) {
	row, col := g.Cell(i)
	return float64(col) * (g.CellW + g.Gap), float64(row) * (g.CellH + g.Gap)
}

// Box returns the bounds of the i-th cell.
func (g Grid) Box(i int, key string) Box {
	x, y := g.Origin(i)
	return Box{Key: key, Left: x, Right: x + g.CellW, Top: y, Bottom: y + g.CellH}
}

// At returns the index of the cell under (x, y), or -1 when the point lies
// in a gap or outside n cells.
func (g Grid) At(x, y float64, n int) int {
	if x < 0 || y < 0 || g.CellW <= 0 || g.CellH <= 0 {
		return -1
	}
	col := int(x / (g.CellW + g.Gap))
	row := int(y / (g.CellH + g.Gap))
	if col >= max(1, g.Columns) {
		return -1
	}
	i := row*max(1, g.Columns) + col
	if i >= n || !g.Box(i, "").Contains(x, y) {
		return -1
	}
	return i
}
