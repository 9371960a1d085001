package scale

import (
	"math"
	"strconv"

	mscale "github.com/aclements/go-moremath/scale"
)

// Linear maps [d0, d1] onto [r0, r1] by a straight line.
// Inverted ranges (r0 > r1) are allowed and are the norm for y axes.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	clamp  bool
}

// NewLinear returns a linear scale. The domain is passed through the
// degenerate domain policy.
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	s := &Linear{r0: r0, r1: r1}
	s.d0, s.d1 = fixDomain(d0, d1)
	return s
}

// SetDomain replaces the domain.
func (s *Linear) SetDomain(d0, d1 float64) *Linear {
	s.d0, s.d1 = fixDomain(d0, d1)
	return s
}

// SetRange replaces the range.
func (s *Linear) SetRange(r0, r1 float64) *Linear {
	s.r0, s.r1 = r0, r1
	return s
}

// SetClamp restricts outputs to the range.
func (s *Linear) SetClamp(clamp bool) *Linear {
	s.clamp = clamp
	return s
}

// Domain returns the domain.
func (s *Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range.
func (s *Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Map returns the range value for x.
func (s *Linear) Map(x float64) float64 {
	t := (x - s.d0) / (s.d1 - s.d0)
	if s.clamp {
		t = clamp01(t)
	}
	return lerp(s.r0, s.r1, t)
}

// Invert returns the domain value that maps to y. A zero-width range
// inverts to the domain start.
func (s *Linear) Invert(y float64) float64 {
	if s.r1 == s.r0 {
		return s.d0
	}
	t := (y - s.r0) / (s.r1 - s.r0)
	if s.clamp {
		t = clamp01(t)
	}
	return lerp(s.d0, s.d1, t)
}

// Ticks returns at most n evenly spaced round values inside the domain.
func (s *Linear) Ticks(n int) []float64 {
	if n <= 0 {
		return nil
	}
	lo, hi := math.Min(s.d0, s.d1), math.Max(s.d0, s.d1)
	ms := mscale.Linear{Min: lo, Max: hi}
	major, _ := ms.Ticks(mscale.TickOptions{Max: n})
	out := make([]float64, len(major))
	for i, v := range major {
		out[i] = cleanTick(v)
	}
	return out
}

// Nice extends the domain outward to round tick values.
func (s *Linear) Nice(n int) *Linear {
	if n <= 0 {
		return s
	}
	reversed := s.d0 > s.d1
	ms := mscale.Linear{Min: s.d0, Max: s.d1}
	ms.Nice(mscale.TickOptions{Max: n})
	lo, hi := cleanTick(ms.Min), cleanTick(ms.Max)
	if reversed {
		lo, hi = hi, lo
	}
	s.d0, s.d1 = fixDomain(lo, hi)
	return s
}

// Copy returns an independent copy of s.
func (s *Linear) Copy() *Linear {
	c := *s
	return &c
}

// cleanTick removes float noise such as 0.30000000000000004.
func cleanTick(v float64) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return f
}
