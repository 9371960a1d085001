package scale

import "math"

// Band divides a continuous range into uniform bands, one per category.
//
// The layout follows the usual band scale model: step is the distance
// between the starts of adjacent bands, bandwidth is the drawn width of
// each band, PaddingInner is the fraction of step left empty between bands
// and PaddingOuter the number of steps left empty before the first and
// after the last band. Align positions the whole block inside the range.
type Band struct {
	domain []string
	index  map[string]int
	r0, r1 float64

	paddingInner float64
	paddingOuter float64
	align        float64

	step      float64
	bandwidth float64
	start     float64
}

// NewBand returns a band scale over domain. Duplicate categories keep
// their first position.
func NewBand(domain []string, r0, r1 float64) *Band {
	s := &Band{r0: r0, r1: r1, align: 0.5}
	s.SetDomain(domain)
	return s
}

// SetDomain replaces the categories.
func (s *Band) SetDomain(domain []string) *Band {
	s.domain = nil
	s.index = make(map[string]int, len(domain))
	for _, d := range domain {
		if _, ok := s.index[d]; ok {
			continue
		}
		s.index[d] = len(s.domain)
		s.domain = append(s.domain, d)
	}
	s.rescale()
	return s
}

// SetRange replaces the range.
func (s *Band) SetRange(r0, r1 float64) *Band {
	s.r0, s.r1 = r0, r1
	s.rescale()
	return s
}

// Padding sets the inner padding to p and the outer padding to p/2, so
// every band sits centered in a slot of size/n with bandwidth (size/n)*(1-p).
func (s *Band) Padding(p float64) *Band {
	p = clampPadding(p)
	s.paddingInner = p
	s.paddingOuter = p / 2
	s.rescale()
	return s
}

// PaddingInner sets the fraction of each step left between bands.
func (s *Band) PaddingInner(p float64) *Band {
	s.paddingInner = clampPadding(p)
	s.rescale()
	return s
}

// PaddingOuter sets the space before the first and after the last band,
// in multiples of step.
func (s *Band) PaddingOuter(p float64) *Band {
	s.paddingOuter = math.Max(0, p)
	s.rescale()
	return s
}

// Align sets where the bands sit when outer padding leaves slack:
// 0 at the range start, 0.5 centered, 1 at the end.
func (s *Band) Align(a float64) *Band {
	s.align = clamp01(a)
	s.rescale()
	return s
}

func clampPadding(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	return math.Min(p, 0.999)
}

func (s *Band) rescale() {
	n := float64(len(s.domain))
	lo, hi := math.Min(s.r0, s.r1), math.Max(s.r0, s.r1)
	if n == 0 {
		s.step, s.bandwidth, s.start = 0, 0, lo
		return
	}
	s.step = (hi - lo) / math.Max(1, n-s.paddingInner+2*s.paddingOuter)
	s.start = lo + (hi-lo-s.step*(n-s.paddingInner))*s.align
	s.bandwidth = s.step * (1 - s.paddingInner)
}

// Domain returns the categories in order.
func (s *Band) Domain() []string { return s.domain }

// Range returns the range.
func (s *Band) Range() (float64, float64) { return s.r0, s.r1 }

// Step returns the distance between adjacent band starts.
func (s *Band) Step() float64 { return s.step }

// Bandwidth returns the width of each band.
func (s *Band) Bandwidth() float64 { return s.bandwidth }

// Map returns the start of the band for category. ok is false for
// categories outside the domain.
func (s *Band) Map(category string) (float64, bool) {
	i, ok := s.index[category]
	if !ok {
		return 0, false
	}
	return s.At(i), true
}

// At returns the start of the i-th band.
func (s *Band) At(i int) float64 {
	if s.r1 < s.r0 {
		i = len(s.domain) - 1 - i
	}
	return s.start + s.step*float64(i)
}

// Center returns the middle of the band for category.
func (s *Band) Center(category string) (float64, bool) {
	x, ok := s.Map(category)
	return x + s.bandwidth/2, ok
}

// Index returns the position in the domain of the band under px.
// Pixels in the padding between bands map to no band.
func (s *Band) Index(px float64) (int, bool) {
	if s.step <= 0 {
		return -1, false
	}
	off := px - s.start
	if off < 0 {
		return -1, false
	}
	i := int(math.Floor(off / s.step))
	if i >= len(s.domain) || off-float64(i)*s.step > s.bandwidth {
		return -1, false
	}
	if s.r1 < s.r0 {
		i = len(s.domain) - 1 - i
	}
	return i, true
}

// Lookup returns the category under px.
func (s *Band) Lookup(px float64) (string, bool) {
	i, ok := s.Index(px)
	if !ok {
		return "", false
	}
	return s.domain[i], true
}
