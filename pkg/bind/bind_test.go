package bind

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/stackviz/pkg/errors"
)

type item struct {
	id string
	v  float64
}

func byID(d item) string { return d.id }

func items(ids ...string) []item {
	out := make([]item, len(ids))
	for i, id := range ids {
		out[i] = item{id: id, v: float64(i)}
	}
	return out
}

func keysOf[T any](els []*Element[T]) []string {
	out := make([]string, len(els))
	for i, e := range els {
		out[i] = e.Key
	}
	return out
}

func sorted(s []string) []string {
	s = slices.Clone(s)
	slices.Sort(s)
	return s
}

func TestReconcilePartitions(t *testing.T) {
	first, err := Reconcile(nil, items("1", "2", "3"), byID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Reconcile(first.Order, items("2", "3", "4"), byID)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{"enter", keysOf(second.Enter), []string{"4"}},
		{"update", keysOf(second.Update), []string{"2", "3"}},
		{"exit", keysOf(second.Exit), []string{"1"}},
	}
	for _, tt := range tests {
		if !slices.Equal(sorted(tt.got), tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if second.Exit[0].State != Exiting {
		t.Errorf("exit state = %v, want exit", second.Exit[0].State)
	}
	if second.Update[0].State != Updating || second.Enter[0].State != Entering {
		t.Errorf("states = %v/%v, want update/enter", second.Update[0].State, second.Enter[0].State)
	}
}

func TestReconcileOrderFollowsData(t *testing.T) {
	first, _ := Reconcile(nil, items("a", "b", "c"), byID)
	res, err := Reconcile(first.Order, items("c", "x", "a"), byID)
	if err != nil {
		t.Fatal(err)
	}
	if got := keysOf(res.Order); !slices.Equal(got, []string{"c", "x", "a"}) {
		t.Errorf("Order = %v, want [c x a]", got)
	}
	for i, e := range res.Order {
		if e.Index != i {
			t.Errorf("Order[%d].Index = %d", i, e.Index)
		}
	}
}

func TestReconcileReusesElements(t *testing.T) {
	first, _ := Reconcile(nil, items("a"), byID)
	next := []item{{id: "a", v: 42}}
	res, _ := Reconcile(first.Order, next, byID)
	if res.Update[0] != first.Order[0] {
		t.Error("update did not reuse the previous element")
	}
	if res.Update[0].Datum.v != 42 {
		t.Errorf("Datum.v = %v, want 42", res.Update[0].Datum.v)
	}
}

func TestReconcileDuplicateDataLastWins(t *testing.T) {
	data := []item{{"a", 1}, {"b", 2}, {"a", 3}}
	res, err := Reconcile(nil, data, byID)
	if err != nil {
		t.Fatal(err)
	}
	if got := keysOf(res.Order); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Order = %v, want [b a]", got)
	}
	if res.Order[1].Datum.v != 3 {
		t.Errorf("a datum = %v, want last occurrence 3", res.Order[1].Datum.v)
	}
}

func TestReconcileDuplicatePreviousEarlierExits(t *testing.T) {
	early := &Element[item]{Key: "a", State: Updating}
	late := &Element[item]{Key: "a", State: Updating}
	res, err := Reconcile([]*Element[item]{early, late}, items("a"), byID)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Update) != 1 || res.Update[0] != late {
		t.Error("later element should be kept")
	}
	if len(res.Exit) != 1 || res.Exit[0] != early {
		t.Error("earlier element should exit")
	}
}

func TestReconcileStrict(t *testing.T) {
	_, err := Reconcile(nil, []item{{"a", 1}, {"a", 2}}, byID, Strict())
	if !errors.Is(err, errors.ErrCodeDuplicateKey) {
		t.Errorf("Reconcile(strict dup) error = %v, want DUPLICATE_KEY", err)
	}
}

func counting() (*map[string]int, Callbacks[item]) {
	calls := map[string]int{}
	return &calls, Callbacks[item]{
		OnEnter: func(e *Element[item]) {
			calls["enter:"+e.Key]++
			e.From = Attrs{"x": 0}
			e.To = Attrs{"x": e.Datum.v}
		},
		OnUpdate: func(e *Element[item]) {
			calls["update:"+e.Key]++
			e.To = Attrs{"x": e.Datum.v}
		},
		OnExit: func(e *Element[item]) {
			calls["exit:"+e.Key]++
			e.To = Attrs{"x": e.Current()["x"], "opacity": 0}
		},
	}
}

func TestSelectionJoinIsIdempotent(t *testing.T) {
	calls, cb := counting()
	s := NewSelection(byID)

	for i := 0; i < 3; i++ {
		if _, err := s.Join(items("1", "2", "3"), cb); err != nil {
			t.Fatal(err)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	for _, k := range []string{"1", "2", "3"} {
		if (*calls)["enter:"+k] != 1 {
			t.Errorf("enter:%s called %d times, want 1", k, (*calls)["enter:"+k])
		}
		if (*calls)["update:"+k] != 2 {
			t.Errorf("update:%s called %d times, want 2", k, (*calls)["update:"+k])
		}
	}
}

func TestSelectionCallbacksOncePerElement(t *testing.T) {
	calls, cb := counting()
	s := NewSelection(byID)
	s.Join(items("1", "2", "3"), cb)
	res, err := s.Join(items("2", "3", "4"), cb)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]int{
		"enter:1": 1, "enter:2": 1, "enter:3": 1, "enter:4": 1,
		"update:2": 1, "update:3": 1,
		"exit:1": 1,
	}
	for k, n := range want {
		if (*calls)[k] != n {
			t.Errorf("%s called %d times, want %d", k, (*calls)[k], n)
		}
	}
	if len(*calls) != len(want) {
		t.Errorf("calls = %v, want %v", *calls, want)
	}
	if got := keysOf(s.Elements()); !slices.Equal(got, []string{"2", "3", "4"}) {
		t.Errorf("Elements() = %v, want [2 3 4]", got)
	}
	if len(res.Exit) != 1 {
		t.Errorf("len(Exit) = %d, want 1", len(res.Exit))
	}
}

func TestSelectionFailedJoinKeepsState(t *testing.T) {
	_, cb := counting()
	s := NewSelection(byID, Strict())
	s.Join(items("a", "b"), cb)

	_, err := s.Join([]item{{"c", 1}, {"c", 2}}, cb)
	if !errors.Is(err, errors.ErrCodeDuplicateKey) {
		t.Fatalf("Join(dup) error = %v, want DUPLICATE_KEY", err)
	}
	if got := keysOf(s.Elements()); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Elements() after failed join = %v, want [a b]", got)
	}
	for _, e := range s.Elements() {
		if e.State == Exiting {
			t.Errorf("element %s marked exiting by a failed join", e.Key)
		}
	}
}

func TestSelectionTransitionRetargets(t *testing.T) {
	s := NewSelection(byID).SetDuration(100 * time.Millisecond)
	cb := Callbacks[item]{
		OnEnter:  func(e *Element[item]) { e.From, e.To = Attrs{"x": 0}, Attrs{"x": e.Datum.v} },
		OnUpdate: func(e *Element[item]) { e.To = Attrs{"x": e.Datum.v} },
	}

	s.Join([]item{{"a", 10}}, cb)
	s.Advance(50 * time.Millisecond)
	e, _ := s.Get("a")
	if got := e.Current()["x"]; got != 5 {
		t.Fatalf("x at half = %v, want 5", got)
	}

	s.Join([]item{{"a", 20}}, cb)
	if got := e.Current()["x"]; got != 5 {
		t.Errorf("x after retarget = %v, want 5 (no jump)", got)
	}
	s.Advance(50 * time.Millisecond)
	if got := e.Current()["x"]; got != 12.5 {
		t.Errorf("x = %v, want 12.5", got)
	}
	if running := s.Advance(50 * time.Millisecond); running {
		t.Error("Advance() = true after completion, want false")
	}
	if got := e.Current()["x"]; got != 20 {
		t.Errorf("final x = %v, want 20", got)
	}
}

func TestSelectionExitTransition(t *testing.T) {
	calls, cb := counting()
	s := NewSelection(byID).SetDuration(time.Second)
	s.Join(items("a", "b"), cb)
	s.Settle()

	s.Join(items("a"), cb)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 while b exits", s.Len())
	}
	if len(s.Active()) != 1 {
		t.Errorf("len(Active()) = %d, want 1", len(s.Active()))
	}

	s.Join(items("a"), cb)
	if (*calls)["exit:b"] != 1 {
		t.Errorf("exit:b called %d times, want 1", (*calls)["exit:b"])
	}

	s.Advance(time.Second)
	if got := keysOf(s.Elements()); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Elements() after exit = %v, want [a]", got)
	}
}

func TestSelectionRevivesExiting(t *testing.T) {
	_, cb := counting()
	s := NewSelection(byID).SetDuration(time.Second)
	s.Join(items("a", "b"), cb)
	s.Join(items("a"), cb)

	res, err := s.Join(items("a", "b"), cb)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Enter) != 0 || len(res.Update) != 2 {
		t.Errorf("enter/update = %d/%d, want 0/2", len(res.Enter), len(res.Update))
	}
	if n := s.Prune(); n != 0 {
		t.Errorf("Prune() = %d, want 0", n)
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(Attrs{"x": 0, "only-a": 1}, Attrs{"x": 10, "only-b": 2}, 0.25)
	want := Attrs{"x": 2.5, "only-a": 1, "only-b": 2}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Lerp() = %v, want %v", got, want)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Entering: "enter", Updating: "update", Exiting: "exit", State(9): "unknown"} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
