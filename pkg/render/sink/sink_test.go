package sink

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/stackviz/pkg/render/scene"
)

func sampleScene() *scene.Scene {
	s := scene.New(100, 50)
	s.Title = "Sales"
	plot := scene.Group("plot").Translate(3, 4)
	plot.Add(
		scene.Rect(10, 20, 5, 7, scene.Style{Fill: "steelblue"}).WithID("a").WithClass("mark").WithTitle("a: 1"),
		scene.Path([]scene.Point{{X: 0, Y: 0}, {X: 10, Y: 5}}, true, scene.Style{Fill: "#ccc"}),
		scene.Text(1, 2, "<b>", scene.AnchorMiddle, scene.Style{FontSize: 10}),
	)
	s.Root.Add(plot)
	return s
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(sampleScene()))

	for _, want := range []string{
		`width="100.00" height="50.00"`,
		`viewBox="0 0 100.00 50.00"`,
		`<title>Sales</title>`,
		`transform="translate(3.00,4.00)"`,
		`<rect x="10.00" y="20.00" width="5.00" height="7.00"`,
		`id="a"`,
		`data-key="a"`,
		`<title>a: 1</title>`,
		`d="M0.00,0.00 L10.00,5.00 Z"`,
		`text-anchor="middle"`,
		`&lt;b&gt;`,
		`font-size:10px`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	if strings.Contains(out, "<script") {
		t.Error("RenderSVG() without interaction contains a script")
	}
}

func TestRenderSVGInteraction(t *testing.T) {
	out := string(RenderSVG(sampleScene(), WithInteraction(), WithDecimals(0)))
	if !strings.Contains(out, ".mark.dim") || !strings.Contains(out, "<script") {
		t.Error("WithInteraction() did not embed CSS and script")
	}
	if !strings.Contains(out, `<rect x="10" y="20" width="5" height="7"`) {
		t.Error("WithDecimals(0) not applied")
	}
}

func TestNormRect(t *testing.T) {
	x, y, w, h := normRect(10, 10, -4, -6)
	if x != 6 || y != 4 || w != 4 || h != 6 {
		t.Errorf("normRect() = %v %v %v %v, want 6 4 4 6", x, y, w, h)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		ok      bool
		r, g, b uint32
	}{
		{"#ffffff", true, 0xffff, 0xffff, 0xffff},
		{"#f00", true, 0xffff, 0, 0},
		{"black", true, 0, 0, 0},
		{"SteelBlue", true, 70 * 0x101, 130 * 0x101, 180 * 0x101},
		{"none", false, 0, 0, 0},
		{"", false, 0, 0, 0},
		{"#zzzzzz", false, 0, 0, 0},
		{"notacolor", false, 0, 0, 0},
	}
	for _, tt := range tests {
		c, ok := ParseColor(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		r, g, b, _ := c.RGBA()
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("ParseColor(%q) = %x %x %x, want %x %x %x", tt.in, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	s := scene.New(10, 10)
	s.Root.Add(scene.Rect(0, 0, 10, 5, scene.Style{Fill: "#ff0000"}))

	data, err := RenderPNG(s, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("bounds = %v, want 20x20", b)
	}
	if r, g, _, _ := img.At(10, 4).RGBA(); r != 0xffff || g != 0 {
		t.Errorf("pixel in rect = %x/%x, want red", r, g)
	}
	if r, g, b, _ := img.At(10, 16).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("pixel below rect = %x/%x/%x, want white", r, g, b)
	}
}

func TestRenderPNGEmpty(t *testing.T) {
	if _, err := RenderPNG(scene.New(0, 10)); err == nil {
		t.Error("RenderPNG(0 width) error = nil, want error")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	s := sampleScene()
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 100 || got.Title != "Sales" {
		t.Errorf("decoded scene = %vx%v %q", got.Width, got.Height, got.Title)
	}
	if n := got.Root.Find("a"); n == nil || n.Style.Fill != "steelblue" {
		t.Errorf("Find(a) = %+v, want steelblue rect", n)
	}

	if _, err := ReadJSON([]byte("{")); err == nil {
		t.Error("ReadJSON(invalid) error = nil, want error")
	}
}

func TestRenderTerm(t *testing.T) {
	s := scene.New(10, 10)
	s.Root.Add(
		scene.Rect(0, 0, 5, 10, scene.Style{Fill: "#000000"}),
		scene.Line(0, 9.5, 10, 9.5, scene.Style{Stroke: "#999"}),
		scene.Circle(7.5, 2.5, 1, scene.Style{Fill: "red"}),
		scene.Text(6, 6, "hi", scene.AnchorStart, scene.Style{}),
		scene.Rect(0, 0, 10, 10, scene.Style{}),
	)
	term := RenderTerm(s, 10, 10)

	tests := []struct {
		col, row int
		want     rune
	}{
		{0, 0, runeFill},
		{4, 5, runeFill},
		{5, 0, ' '},
		{7, 2, runePoint},
		{8, 9, runeHLine},
		{6, 5, 'h'},
		{7, 5, 'i'},
	}
	for _, tt := range tests {
		if got := term.Cells[tt.row][tt.col].Rune; got != tt.want {
			t.Errorf("cell(%d,%d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}

	lines := strings.Split(term.String(), "\n")
	if len(lines) != 10 {
		t.Fatalf("String() has %d lines, want 10", len(lines))
	}
	if !strings.HasPrefix(lines[0], "█████ ") {
		t.Errorf("line 0 = %q", lines[0])
	}

	var runs int
	term.Render(func(color, text string) string {
		runs++
		return text
	})
	if runs == 0 {
		t.Error("Render() never called paint")
	}
}

func TestTermPolygonFill(t *testing.T) {
	s := scene.New(4, 4)
	s.Root.Add(scene.Path([]scene.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}, true, scene.Style{Fill: "#abc"}))
	term := RenderTerm(s, 4, 4)
	for r := range 4 {
		for c := range 4 {
			if term.Cells[r][c].Rune != runeArea {
				t.Fatalf("cell(%d,%d) = %q, want area fill", c, r, term.Cells[r][c].Rune)
			}
		}
	}
	if c, r := term.CellOf(3.9, 0.1); c != 3 || r != 0 {
		t.Errorf("CellOf() = %d,%d, want 3,0", c, r)
	}
}
