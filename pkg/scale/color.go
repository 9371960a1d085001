package scale

import (
	"image/color"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stackviz/pkg/errors"
)

// DefaultScheme is the categorical palette used when none is configured.
const DefaultScheme = "Dark2"

// Interpolator maps t in [0, 1] to a color.
type Interpolator func(t float64) color.Color

// Blend names a color space for two-color interpolation.
type Blend string

const (
	BlendHCL Blend = "hcl"
	BlendLab Blend = "lab"
	BlendRGB Blend = "rgb"
)

// Interpolate returns an interpolator from color a to color b in the given
// space. HCL keeps perceived lightness even, which is what choropleths want.
func Interpolate(space Blend, from, to string) (Interpolator, error) {
	a, err := colorful.Hex(from)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "color %q", from)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "color %q", to)
	}

	var blend func(t float64) colorful.Color
	switch Blend(strings.ToLower(string(space))) {
	case BlendHCL, "":
		blend = func(t float64) colorful.Color { return a.BlendHcl(b, t) }
	case BlendLab:
		blend = func(t float64) colorful.Color { return a.BlendLab(b, t) }
	case BlendRGB:
		blend = func(t float64) colorful.Color { return a.BlendRgb(b, t) }
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown color space %q", space)
	}
	return func(t float64) color.Color {
		return blend(clamp01(t)).Clamped()
	}, nil
}

// Gradient returns an interpolator through evenly spaced colors.
func Gradient(colors ...color.Color) (Interpolator, error) {
	if len(colors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "gradient needs at least one color")
	}
	g := palette.RGBGradient{Colors: make([]color.RGBA, len(colors))}
	for i, c := range colors {
		g.Colors[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return func(t float64) color.Color { return g.Map(clamp01(t)) }, nil
}

// SchemeGradient returns a gradient through the largest variant of a
// ColorBrewer palette, for example "Blues" or "YlOrRd".
func SchemeGradient(name string) (Interpolator, error) {
	cs, err := Scheme(name, 0)
	if err != nil {
		return nil, err
	}
	return Gradient(cs...)
}

// Scheme returns n colors of the ColorBrewer palette called name. n <= 0
// selects the largest variant. When n exceeds the largest variant, the
// largest one is returned and callers cycle through it.
func Scheme(name string, n int) ([]color.Color, error) {
	p, ok := brewer.ByName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown color scheme %q", name)
	}
	largest, fit := 0, 0
	for size := range p {
		largest = max(largest, size)
		if n > 0 && size >= n && (fit == 0 || size < fit) {
			fit = size
		}
	}
	best := largest
	if fit > 0 {
		best = fit
	}
	out := make([]color.Color, 0, best)
	for _, c := range p[best] {
		out = append(out, c)
	}
	return out, nil
}

// SchemeHex is Scheme with colors rendered as #rrggbb.
func SchemeHex(name string, n int) ([]string, error) {
	cs, err := Scheme(name, n)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = Hex(c)
	}
	return out, nil
}

// Hex renders c as #rrggbb. Fully transparent colors render as "none".
func Hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cf.Clamped().Hex()
}

// Sequential maps a numeric domain onto colors through an interpolator.
type Sequential struct {
	lin    *Linear
	interp Interpolator
}

// NewSequential returns a sequential color scale over [d0, d1].
func NewSequential(d0, d1 float64, interp Interpolator) *Sequential {
	return &Sequential{lin: NewLinear(d0, d1, 0, 1).SetClamp(true), interp: interp}
}

// SetDomain replaces the domain.
func (s *Sequential) SetDomain(d0, d1 float64) *Sequential {
	s.lin.SetDomain(d0, d1)
	return s
}

// Domain returns the domain.
func (s *Sequential) Domain() (float64, float64) { return s.lin.Domain() }

// Map returns the color for v.
func (s *Sequential) Map(v float64) color.Color { return s.interp(s.lin.Map(v)) }

// MapHex returns the color for v as #rrggbb.
func (s *Sequential) MapHex(v float64) string { return Hex(s.Map(v)) }
