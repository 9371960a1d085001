// Package bind reconciles a live set of visual elements with new data.
//
// Every datum is identified by a key. [Reconcile] partitions keys into
// entering (new), updating (present before and now) and exiting (present
// before, absent now). A [Selection] owns the live elements of one chart
// layer and applies [Callbacks] exactly once per element and category, so
// joining the same data twice never duplicates elements.
//
// # Key collisions
//
// Keys are expected to be unique; the caller is responsible for choosing a
// key function that guarantees it. By default a collision resolves to the
// last occurrence: when the previous set holds two elements with one key,
// the earlier one exits; when new data repeats a key, the last datum wins
// and takes the position of its last occurrence. The [Strict] option turns
// any collision into a DUPLICATE_KEY error instead.
//
// # Transitions
//
// Elements carry numeric attribute sets From and To and a progress in
// [0, 1]. A join retargets an element from its current interpolated
// attributes to the new target, so the most recent join always wins and
// transitions never queue.
package bind

import (
	"github.com/matzehuels/stackviz/pkg/errors"
)

// State is the lifecycle state of an element.
type State int

const (
	Entering State = iota
	Updating
	Exiting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Entering:
		return "enter"
	case Updating:
		return "update"
	case Exiting:
		return "exit"
	default:
		return "unknown"
	}
}

// Attrs is a set of numeric visual attributes (x, y, width, opacity, ...).
type Attrs map[string]float64

// Lerp interpolates between a and b. Keys present in only one side snap to
// that side's value.
func Lerp(a, b Attrs, t float64) Attrs {
	out := make(Attrs, max(len(a), len(b)))
	for k, bv := range b {
		if av, ok := a[k]; ok {
			out[k] = av + (bv-av)*t
		} else {
			out[k] = bv
		}
	}
	for k, av := range a {
		if _, ok := b[k]; !ok {
			out[k] = av
		}
	}
	return out
}

// Element is one keyed visual item.
type Element[T any] struct {
	Key   string
	Datum T
	Index int
	State State

	From, To Attrs
	progress float64
}

// Current returns the interpolated attributes at the element's progress.
func (e *Element[T]) Current() Attrs {
	if e.progress >= 1 || e.From == nil {
		return e.To
	}
	return Lerp(e.From, e.To, e.progress)
}

// Progress returns the transition progress in [0, 1].
func (e *Element[T]) Progress() float64 { return e.progress }

// Settled reports whether the element reached its target.
func (e *Element[T]) Settled() bool { return e.progress >= 1 }

// Result partitions a reconciliation.
type Result[T any] struct {
	Enter  []*Element[T]
	Update []*Element[T]
	Exit   []*Element[T]
	// Order holds the entering and updating elements in data order.
	Order []*Element[T]
}

// Option configures reconciliation.
type Option func(*options)

type options struct {
	strict bool
}

// Strict rejects key collisions with a DUPLICATE_KEY error.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// Reconcile diffs prev against data. Elements of prev that match a key are
// reused (their State becomes Updating and Datum is replaced); new keys get
// fresh elements in state Entering; unmatched previous elements are marked
// Exiting. Collisions are detected before any element is touched, so an
// error leaves prev unchanged.
func Reconcile[T any](prev []*Element[T], data []T, key func(T) string, opts ...Option) (Result[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	last := make(map[string]int, len(data))
	keys := make([]string, len(data))
	for i, d := range data {
		k := key(d)
		if _, dup := last[k]; dup && o.strict {
			return Result[T]{}, errors.New(errors.ErrCodeDuplicateKey, "duplicate key %q in data at index %d", k, i)
		}
		keys[i] = k
		last[k] = i
	}

	byKey := make(map[string]*Element[T], len(prev))
	var shadowed []*Element[T]
	for _, e := range prev {
		if old, dup := byKey[e.Key]; dup {
			if o.strict {
				return Result[T]{}, errors.New(errors.ErrCodeDuplicateKey, "duplicate key %q in live elements", e.Key)
			}
			shadowed = append(shadowed, old)
		}
		byKey[e.Key] = e
	}

	var res Result[T]
	for i, d := range data {
		k := keys[i]
		if last[k] != i {
			continue
		}
		idx := len(res.Order)
		if e, ok := byKey[k]; ok {
			delete(byKey, k)
			e.Datum, e.Index, e.State = d, idx, Updating
			res.Update = append(res.Update, e)
			res.Order = append(res.Order, e)
			continue
		}
		e := &Element[T]{Key: k, Datum: d, Index: idx, State: Entering}
		res.Enter = append(res.Enter, e)
		res.Order = append(res.Order, e)
	}

	res.Exit = append(res.Exit, shadowed...)
	for _, e := range prev {
		if byKey[e.Key] == e {
			res.Exit = append(res.Exit, e)
		}
	}
	for _, e := range res.Exit {
		e.State = Exiting
	}
	return res, nil
}
