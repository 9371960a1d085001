package scale

import (
	"time"
)

// Time is a linear scale over instants. Internally instants are Unix
// seconds, the same numeric interpretation data values use.
type Time struct {
	lin *Linear
}

// NewTime returns a time scale. A zero-width domain becomes one second wide.
func NewTime(t0, t1 time.Time, r0, r1 float64) *Time {
	return &Time{lin: NewLinear(Seconds(t0), Seconds(t1), r0, r1)}
}

// Seconds converts t to fractional Unix seconds.
func Seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// FromSeconds converts fractional Unix seconds back to a UTC time.
func FromSeconds(s float64) time.Time {
	return time.Unix(0, int64(s*1e9)).UTC()
}

// SetDomain replaces the domain.
func (s *Time) SetDomain(t0, t1 time.Time) *Time {
	s.lin.SetDomain(Seconds(t0), Seconds(t1))
	return s
}

// SetRange replaces the range.
func (s *Time) SetRange(r0, r1 float64) *Time {
	s.lin.SetRange(r0, r1)
	return s
}

// Domain returns the domain as instants.
func (s *Time) Domain() (time.Time, time.Time) {
	d0, d1 := s.lin.Domain()
	return FromSeconds(d0), FromSeconds(d1)
}

// Range returns the range.
func (s *Time) Range() (float64, float64) { return s.lin.Range() }

// Map returns the range value for t.
func (s *Time) Map(t time.Time) float64 { return s.lin.Map(Seconds(t)) }

// MapSeconds maps a value already expressed in Unix seconds.
func (s *Time) MapSeconds(sec float64) float64 { return s.lin.Map(sec) }

// Invert returns the instant that maps to y.
func (s *Time) Invert(y float64) time.Time { return FromSeconds(s.lin.Invert(y)) }

// InvertSeconds returns the Unix seconds that map to y.
func (s *Time) InvertSeconds(y float64) float64 { return s.lin.Invert(y) }

// Linear exposes the underlying seconds scale.
func (s *Time) Linear() *Linear { return s.lin }

type timeStep struct {
	d      time.Duration
	months int
	format string
}

func (st timeStep) approx() time.Duration {
	if st.months > 0 {
		return time.Duration(st.months) * 30 * 24 * time.Hour
	}
	return st.d
}

var timeSteps = []timeStep{
	{d: time.Second, format: "15:04:05"},
	{d: 5 * time.Second, format: "15:04:05"},
	{d: 15 * time.Second, format: "15:04:05"},
	{d: 30 * time.Second, format: "15:04:05"},
	{d: time.Minute, format: "15:04"},
	{d: 5 * time.Minute, format: "15:04"},
	{d: 15 * time.Minute, format: "15:04"},
	{d: 30 * time.Minute, format: "15:04"},
	{d: time.Hour, format: "15:04"},
	{d: 3 * time.Hour, format: "15:04"},
	{d: 6 * time.Hour, format: "15:04"},
	{d: 12 * time.Hour, format: "Jan 2 15:04"},
	{d: 24 * time.Hour, format: "Jan 2"},
	{d: 2 * 24 * time.Hour, format: "Jan 2"},
	{d: 7 * 24 * time.Hour, format: "Jan 2"},
	{months: 1, format: "Jan 2006"},
	{months: 3, format: "Jan 2006"},
	{months: 12, format: "2006"},
	{months: 24, format: "2006"},
	{months: 60, format: "2006"},
	{months: 120, format: "2006"},
	{months: 240, format: "2006"},
	{months: 600, format: "2006"},
	{months: 1200, format: "2006"},
}

// Ticks returns at most n calendar aligned instants inside the domain and
// the layout suited to label them.
func (s *Time) Ticks(n int) ([]time.Time, string) {
	if n <= 0 {
		return nil, ""
	}
	t0, t1 := s.Domain()
	if t1.Before(t0) {
		t0, t1 = t1, t0
	}
	span := t1.Sub(t0)

	step := timeSteps[len(timeSteps)-1]
	for _, st := range timeSteps {
		if int(span/st.approx())+1 <= n {
			step = st
			break
		}
	}

	var out []time.Time
	for t := floorTime(t0, step); !t.After(t1); t = advance(t, step) {
		if !t.Before(t0) {
			out = append(out, t)
		}
		if len(out) > n {
			break
		}
	}
	return out, step.format
}

func floorTime(t time.Time, st timeStep) time.Time {
	t = t.UTC()
	if st.months == 0 {
		return t.Truncate(st.d)
	}
	if st.months >= 12 {
		years := st.months / 12
		y := t.Year() - t.Year()%years
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	m := int(t.Month()) - 1
	m -= m % st.months
	return time.Date(t.Year(), time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
}

func advance(t time.Time, st timeStep) time.Time {
	if st.months == 0 {
		return t.Add(st.d)
	}
	return t.AddDate(0, st.months, 0)
}
