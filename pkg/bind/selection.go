package bind

import "time"

// Callbacks are invoked once per element and join. OnEnter must set To and
// may set From (the starting attributes); a nil From starts at To. OnUpdate
// sets the new To; From is already the current interpolated value.
// OnExit may set To to an exit target such as zero opacity.
type Callbacks[T any] struct {
	OnEnter  func(e *Element[T])
	OnUpdate func(e *Element[T])
	OnExit   func(e *Element[T])
}

// Selection is the live element set of one chart layer.
type Selection[T any] struct {
	key      func(T) string
	opts     []Option
	duration time.Duration
	live     []*Element[T]
}

// NewSelection returns an empty selection keyed by key.
func NewSelection[T any](key func(T) string, opts ...Option) *Selection[T] {
	return &Selection[T]{key: key, opts: opts}
}

// SetDuration sets the transition length. Zero, the default, settles every
// join immediately and drops exiting elements right away.
func (s *Selection[T]) SetDuration(d time.Duration) *Selection[T] {
	s.duration = max(0, d)
	return s
}

// SetOptions replaces the reconciliation options used by later joins.
func (s *Selection[T]) SetOptions(opts ...Option) *Selection[T] {
	s.opts = opts
	return s
}

// Join reconciles the live set with data and runs the callbacks. On error
// the live set is unchanged.
func (s *Selection[T]) Join(data []T, cb Callbacks[T]) (Result[T], error) {
	wasExiting := make(map[*Element[T]]bool)
	for _, e := range s.live {
		if e.State == Exiting {
			wasExiting[e] = true
		}
	}

	res, err := Reconcile(s.live, data, s.key, s.opts...)
	if err != nil {
		return res, err
	}

	for _, e := range res.Enter {
		if cb.OnEnter != nil {
			cb.OnEnter(e)
		}
		if e.From == nil {
			e.From = e.To
		}
		e.progress = 0
	}
	for _, e := range res.Update {
		e.From = e.Current()
		e.progress = 0
		if cb.OnUpdate != nil {
			cb.OnUpdate(e)
		}
	}
	var exits []*Element[T]
	for _, e := range res.Exit {
		exits = append(exits, e)
		if wasExiting[e] {
			continue
		}
		e.From = e.Current()
		e.progress = 0
		if cb.OnExit != nil {
			cb.OnExit(e)
		}
	}

	s.live = append(append(make([]*Element[T], 0, len(res.Order)+len(exits)), res.Order...), exits...)
	if s.duration == 0 {
		s.Settle()
	}
	return res, nil
}

// Advance moves every transition forward by dt. Exiting elements that
// finish are removed. It reports whether any transition is still running.
func (s *Selection[T]) Advance(dt time.Duration) bool {
	if s.duration == 0 {
		s.Settle()
		return false
	}
	step := float64(dt) / float64(s.duration)
	running := false
	for _, e := range s.live {
		if e.progress < 1 {
			e.progress = min(1, e.progress+step)
			running = running || e.progress < 1
		}
	}
	s.pruneSettled()
	return running
}

// Settle jumps every transition to its end and drops exiting elements.
func (s *Selection[T]) Settle() {
	for _, e := range s.live {
		e.progress = 1
	}
	s.pruneSettled()
}

// Prune drops all exiting elements regardless of progress and returns how
// many were removed.
func (s *Selection[T]) Prune() int {
	n := len(s.live)
	kept := s.live[:0]
	for _, e := range s.live {
		if e.State != Exiting {
			kept = append(kept, e)
		}
	}
	s.live = kept
	return n - len(kept)
}

func (s *Selection[T]) pruneSettled() {
	kept := s.live[:0]
	for _, e := range s.live {
		if e.State == Exiting && e.progress >= 1 {
			continue
		}
		kept = append(kept, e)
	}
	s.live = kept
}

// Elements returns the live elements in render order: entering and
// updating elements in data order, then exiting elements.
func (s *Selection[T]) Elements() []*Element[T] {
	return append([]*Element[T](nil), s.live...)
}

// Active returns the live elements that are not exiting.
func (s *Selection[T]) Active() []*Element[T] {
	var out []*Element[T]
	for _, e := range s.live {
		if e.State != Exiting {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of live elements, exiting ones included.
func (s *Selection[T]) Len() int { return len(s.live) }

// Get returns the live element with key k.
func (s *Selection[T]) Get(k string) (*Element[T], bool) {
	for _, e := range s.live {
		if e.Key == k {
			return e, true
		}
	}
	return nil, false
}
