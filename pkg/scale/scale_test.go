package scale

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/stackviz/pkg/errors"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLinearEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		d0, d1, r0, r1 float64
	}{
		{"ascending", 0, 10, 0, 100},
		{"inverted range", 0, 10, 500, 0},
		{"negative domain", -5, 5, 20, 940},
		{"reversed domain", 10, 0, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLinear(tt.d0, tt.d1, tt.r0, tt.r1)
			if got := s.Map(tt.d0); !approx(got, tt.r0) {
				t.Errorf("Map(%v) = %v, want %v", tt.d0, got, tt.r0)
			}
			if got := s.Map(tt.d1); !approx(got, tt.r1) {
				t.Errorf("Map(%v) = %v, want %v", tt.d1, got, tt.r1)
			}
			mid := (tt.d0 + tt.d1) / 2
			if got := s.Invert(s.Map(mid)); !approx(got, mid) {
				t.Errorf("Invert(Map(%v)) = %v, want %v", mid, got, mid)
			}
		})
	}
}

func TestLinearDegenerate(t *testing.T) {
	s := NewLinear(3, 3, 0, 100)
	d0, d1 := s.Domain()
	if d0 != 3 || d1 != 4 {
		t.Errorf("Domain() = [%v, %v], want [3, 4]", d0, d1)
	}
	if got := s.Map(3); got != 0 {
		t.Errorf("Map(3) = %v, want 0", got)
	}
	if math.IsNaN(s.Map(3.5)) || math.IsInf(s.Map(3.5), 0) {
		t.Errorf("Map(3.5) = %v, want finite", s.Map(3.5))
	}

	flat := NewLinear(0, 10, 50, 50)
	if got := flat.Invert(50); got != 0 {
		t.Errorf("Invert on flat range = %v, want 0", got)
	}
}

func TestLinearClamp(t *testing.T) {
	s := NewLinear(0, 10, 0, 100).SetClamp(true)
	if got := s.Map(20); got != 100 {
		t.Errorf("Map(20) = %v, want 100", got)
	}
	if got := s.Map(-5); got != 0 {
		t.Errorf("Map(-5) = %v, want 0", got)
	}
}

func TestExtent(t *testing.T) {
	tests := []struct {
		name   string
		in     []float64
		lo, hi float64
	}{
		{"empty", nil, 0, 1},
		{"single", []float64{7}, 7, 8},
		{"many", []float64{3, -1, 9}, -1, 9},
		{"nan ignored", []float64{math.NaN(), 2, 4}, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := Extent(tt.in)
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("Extent(%v) = [%v, %v], want [%v, %v]", tt.in, lo, hi, tt.lo, tt.hi)
			}
		})
	}
}

func TestLinearTicks(t *testing.T) {
	got := NewLinear(0, 10, 0, 1).Ticks(5)
	want := []float64{0, 5, 10}
	if len(got) != len(want) {
		t.Fatalf("Ticks(5) = %v, want %v", got, want)
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("Ticks(5)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got := NewLinear(0, 1, 0, 1).Ticks(0); got != nil {
		t.Errorf("Ticks(0) = %v, want nil", got)
	}
}

func TestLinearNice(t *testing.T) {
	s := NewLinear(0.5, 9.7, 0, 100).Nice(5)
	d0, d1 := s.Domain()
	if d0 != 0 || d1 != 10 {
		t.Errorf("Nice(5) domain = [%v, %v], want [0, 10]", d0, d1)
	}
}

func TestSqrt(t *testing.T) {
	s := NewSqrt(0, 100, 0, 10)
	tests := []struct{ in, want float64 }{
		{0, 0},
		{25, 5},
		{100, 10},
	}
	for _, tt := range tests {
		if got := s.Map(tt.in); !approx(got, tt.want) {
			t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := s.Invert(5); !approx(got, 25) {
		t.Errorf("Invert(5) = %v, want 25", got)
	}
}

func TestTimeScale(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.AddDate(0, 0, 10)
	s := NewTime(t0, t1, 0, 100)

	if got := s.Map(t0); got != 0 {
		t.Errorf("Map(t0) = %v, want 0", got)
	}
	if got := s.Map(t1); got != 100 {
		t.Errorf("Map(t1) = %v, want 100", got)
	}
	if got := s.Invert(50); !got.Equal(t0.AddDate(0, 0, 5)) {
		t.Errorf("Invert(50) = %v, want %v", got, t0.AddDate(0, 0, 5))
	}

	same := NewTime(t0, t0, 0, 100)
	d0, d1 := same.Domain()
	if d1.Sub(d0) != time.Second {
		t.Errorf("degenerate domain width = %v, want 1s", d1.Sub(d0))
	}
}

func TestTimeTicks(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	s := NewTime(t0, t1, 0, 1)

	tests := []struct {
		name   string
		n      int
		count  int
		layout string
	}{
		{"monthly", 13, 12, "Jan 2006"},
		{"quarterly", 12, 4, "Jan 2006"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks, layout := s.Ticks(tt.n)
			if len(ticks) != tt.count {
				t.Errorf("len(Ticks(%d)) = %d, want %d (%v)", tt.n, len(ticks), tt.count, ticks)
			}
			if layout != tt.layout {
				t.Errorf("layout = %q, want %q", layout, tt.layout)
			}
			if len(ticks) > 0 && !ticks[0].Equal(t0) {
				t.Errorf("first tick = %v, want %v", ticks[0], t0)
			}
		})
	}
}

func TestBandPadding(t *testing.T) {
	s := NewBand([]string{"a", "b", "c", "d"}, 0, 100).Padding(0.2)

	if got, want := s.Bandwidth(), (100.0/4)*(1-0.2); !approx(got, want) {
		t.Errorf("Bandwidth() = %v, want %v", got, want)
	}
	if got := s.Step(); !approx(got, 25) {
		t.Errorf("Step() = %v, want 25", got)
	}
	first, _ := s.Map("a")
	last, _ := s.Map("d")
	if !approx(first, 2.5) || !approx(last, 77.5) {
		t.Errorf("Map(a), Map(d) = %v, %v, want 2.5, 77.5", first, last)
	}
	if !approx(first-0, 100-(last+s.Bandwidth())) {
		t.Errorf("padding not symmetric: left %v right %v", first, 100-(last+s.Bandwidth()))
	}
	if _, ok := s.Map("z"); ok {
		t.Error("Map(z) ok = true, want false")
	}
}

func TestBandIndex(t *testing.T) {
	s := NewBand([]string{"a", "b", "c", "d"}, 0, 100).Padding(0.2)
	tests := []struct {
		px   float64
		want int
		ok   bool
	}{
		{10, 0, true},
		{24, -1, false},
		{30, 1, true},
		{90, 3, true},
		{1, -1, false},
		{99, -1, false},
	}
	for _, tt := range tests {
		got, ok := s.Index(tt.px)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Index(%v) = %v, %v; want %v, %v", tt.px, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBandReversedRange(t *testing.T) {
	s := NewBand([]string{"a", "b"}, 100, 0)
	a, _ := s.Map("a")
	b, _ := s.Map("b")
	if a != 50 || b != 0 {
		t.Errorf("Map(a), Map(b) = %v, %v, want 50, 0", a, b)
	}
	if cat, ok := s.Lookup(75); !ok || cat != "a" {
		t.Errorf("Lookup(75) = %v, %v, want a, true", cat, ok)
	}
}

func TestBandEmpty(t *testing.T) {
	s := NewBand(nil, 0, 100)
	if s.Bandwidth() != 0 || s.Step() != 0 {
		t.Errorf("empty band = step %v width %v, want 0, 0", s.Step(), s.Bandwidth())
	}
	if _, ok := s.Index(50); ok {
		t.Error("Index on empty band ok = true, want false")
	}
}

func TestOrdinalCycles(t *testing.T) {
	s := NewOrdinal([]string{"red", "green"})
	seq := []struct{ in, want string }{
		{"x", "red"},
		{"y", "green"},
		{"z", "red"},
		{"x", "red"},
		{"y", "green"},
	}
	for _, tt := range seq {
		if got := s.Map(tt.in); got != tt.want {
			t.Errorf("Map(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := len(s.Domain()); got != 3 {
		t.Errorf("len(Domain()) = %d, want 3", got)
	}

	empty := NewOrdinal[int](nil)
	if got := empty.Map("a"); got != 0 {
		t.Errorf("empty Map = %v, want 0", got)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	interp, err := Interpolate(BlendRGB, "#ff0000", "#0000ff")
	if err != nil {
		t.Fatal(err)
	}
	s := NewSequential(0, 10, interp)
	if got := s.MapHex(0); got != "#ff0000" {
		t.Errorf("MapHex(0) = %v, want #ff0000", got)
	}
	if got := s.MapHex(10); got != "#0000ff" {
		t.Errorf("MapHex(10) = %v, want #0000ff", got)
	}
	if got := s.MapHex(99); got != "#0000ff" {
		t.Errorf("MapHex(99) = %v, want clamped #0000ff", got)
	}
}

func TestInterpolateHCL(t *testing.T) {
	interp, err := Interpolate(BlendHCL, "#f7fbff", "#08306b")
	if err != nil {
		t.Fatal(err)
	}
	mid := Hex(interp(0.5))
	if mid == "#f7fbff" || mid == "#08306b" {
		t.Errorf("midpoint = %v, want a blended color", mid)
	}

	if _, err := Interpolate(BlendHCL, "nope", "#000000"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Interpolate(bad hex) error = %v, want INVALID_CONFIG", err)
	}
	if _, err := Interpolate("cmyk", "#000000", "#ffffff"); err == nil {
		t.Error("Interpolate(cmyk) error = nil, want error")
	}
}

func TestGradient(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	g, err := Gradient(black, white)
	if err != nil {
		t.Fatal(err)
	}
	if got := Hex(g(0)); got != "#000000" {
		t.Errorf("g(0) = %v, want #000000", got)
	}
	if got := Hex(g(1)); got != "#ffffff" {
		t.Errorf("g(1) = %v, want #ffffff", got)
	}
	if _, err := Gradient(); err == nil {
		t.Error("Gradient() error = nil, want error")
	}
}

func TestScheme(t *testing.T) {
	cs, err := Scheme("Dark2", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 3 {
		t.Errorf("len(Scheme(Dark2, 3)) = %d, want 3", len(cs))
	}

	blues, err := Scheme("Blues", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(blues) != 9 {
		t.Errorf("len(Scheme(Blues, 0)) = %d, want 9", len(blues))
	}

	big, err := Scheme("Dark2", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(big) != 8 {
		t.Errorf("len(Scheme(Dark2, 50)) = %d, want 8", len(big))
	}

	if _, err := Scheme("NoSuchScheme", 3); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Scheme(unknown) error = %v, want INVALID_CONFIG", err)
	}
}

func TestHexTransparent(t *testing.T) {
	if got := Hex(color.RGBA{}); got != "none" {
		t.Errorf("Hex(transparent) = %v, want none", got)
	}
}
