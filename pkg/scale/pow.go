package scale

import "math"

// Pow is a continuous scale that applies x^Exponent before the linear map.
// Negative inputs keep their sign.
type Pow struct {
	exp float64
	lin *Linear
	d0  float64
	d1  float64
}

// NewPow returns a power scale with exponent k.
func NewPow(k, d0, d1, r0, r1 float64) *Pow {
	s := &Pow{exp: k, lin: NewLinear(0, 1, r0, r1)}
	return s.SetDomain(d0, d1)
}

// NewSqrt returns a square root scale, the usual choice for bubble radii
// so that area grows linearly with the value.
func NewSqrt(d0, d1, r0, r1 float64) *Pow {
	return NewPow(0.5, d0, d1, r0, r1)
}

// SetDomain replaces the domain.
func (s *Pow) SetDomain(d0, d1 float64) *Pow {
	s.d0, s.d1 = fixDomain(d0, d1)
	s.lin.SetDomain(s.raise(s.d0), s.raise(s.d1))
	return s
}

// SetRange replaces the range.
func (s *Pow) SetRange(r0, r1 float64) *Pow {
	s.lin.SetRange(r0, r1)
	return s
}

// SetClamp restricts outputs to the range.
func (s *Pow) SetClamp(clamp bool) *Pow {
	s.lin.SetClamp(clamp)
	return s
}

// Domain returns the untransformed domain.
func (s *Pow) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range.
func (s *Pow) Range() (float64, float64) { return s.lin.Range() }

// Map returns the range value for x.
func (s *Pow) Map(x float64) float64 { return s.lin.Map(s.raise(x)) }

// Invert returns the domain value that maps to y.
func (s *Pow) Invert(y float64) float64 {
	return signedPow(s.lin.Invert(y), 1/s.exp)
}

// Ticks returns round values in the untransformed domain.
func (s *Pow) Ticks(n int) []float64 {
	return NewLinear(s.d0, s.d1, 0, 1).Ticks(n)
}

func (s *Pow) raise(x float64) float64 { return signedPow(x, s.exp) }

func signedPow(x, k float64) float64 {
	if x < 0 {
		return -math.Pow(-x, k)
	}
	return math.Pow(x, k)
}
