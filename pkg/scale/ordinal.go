package scale

// Ordinal maps categories onto a discrete range, cycling when there are
// more categories than range values. Unknown categories are appended to
// the domain on first use so that a value is stable once assigned.
type Ordinal[T any] struct {
	domain []string
	index  map[string]int
	rng    []T
}

// NewOrdinal returns an ordinal scale with the given range.
func NewOrdinal[T any](rng []T) *Ordinal[T] {
	return &Ordinal[T]{rng: rng, index: make(map[string]int)}
}

// SetDomain replaces the known categories.
func (s *Ordinal[T]) SetDomain(domain []string) *Ordinal[T] {
	s.domain = nil
	s.index = make(map[string]int, len(domain))
	for _, d := range domain {
		s.add(d)
	}
	return s
}

func (s *Ordinal[T]) add(category string) int {
	if i, ok := s.index[category]; ok {
		return i
	}
	i := len(s.domain)
	s.index[category] = i
	s.domain = append(s.domain, category)
	return i
}

// Domain returns the known categories.
func (s *Ordinal[T]) Domain() []string { return s.domain }

// Range returns the range values.
func (s *Ordinal[T]) Range() []T { return s.rng }

// Map returns the range value for category. An empty range yields the
// zero value.
func (s *Ordinal[T]) Map(category string) T {
	var zero T
	if len(s.rng) == 0 {
		return zero
	}
	return s.rng[s.add(category)%len(s.rng)]
}
