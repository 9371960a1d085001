// Package scale maps data values to visual values.
//
// Continuous scales ([Linear], [Pow], [Time]) map a numeric domain onto a
// pixel range and can be inverted. Discrete scales ([Band], [Ordinal]) map
// categories to positions or arbitrary range values. [Sequential] maps a
// numeric domain through a color [Interpolator].
//
// # Degenerate Domains
//
// Scales never divide by zero. An empty domain is treated as [0, 1] and a
// domain of a single value v as [v, v+1], so a dataset with one record still
// renders at a well defined position.
//
// # Ticks
//
// Linear tick placement is delegated to github.com/aclements/go-moremath/scale,
// which picks the densest "nice" level (1, 2, 5 times a power of ten) that
// does not exceed the requested count.
package scale

import "math"

// Continuous is a numeric scale with an inverse.
type Continuous interface {
	Map(x float64) float64
	Invert(y float64) float64
	Domain() (lo, hi float64)
	Range() (r0, r1 float64)
	Ticks(n int) []float64
}

// Extent returns the minimum and maximum of values after applying the
// degenerate domain policy. NaN values are ignored.
func Extent(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	return fixDomain(lo, hi)
}

// fixDomain widens an empty or zero-width domain to a unit interval.
func fixDomain(lo, hi float64) (float64, float64) {
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0):
		return 0, 1
	case lo == hi:
		return lo, lo + 1
	default:
		return lo, hi
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
