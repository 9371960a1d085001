package scene

import "testing"

func TestWalkAccumulatesTranslation(t *testing.T) {
	root := Group("root").Translate(10, 20)
	inner := Group("inner").Translate(5, 5)
	r := Rect(1, 1, 2, 2, Style{Fill: "#000"}).WithID("r")
	root.Add(inner.Add(r))

	var gotDX, gotDY float64
	root.Walk(func(n *Node, dx, dy float64) bool {
		if n.ID == "r" {
			gotDX, gotDY = dx, dy
		}
		return true
	})
	if gotDX != 15 || gotDY != 25 {
		t.Errorf("offset = (%v, %v), want (15, 25)", gotDX, gotDY)
	}
}

func TestFindAndCount(t *testing.T) {
	root := Group("root").Add(
		Circle(0, 0, 1, Style{}).WithID("a"),
		Group("g").Add(Circle(0, 0, 1, Style{}).WithID("b"), nil),
		Text(0, 0, "hi", AnchorStart, Style{}),
	)
	if n := root.Find("b"); n == nil || n.Kind != KindCircle {
		t.Errorf("Find(b) = %v, want circle", n)
	}
	if n := root.Find("zzz"); n != nil {
		t.Errorf("Find(zzz) = %v, want nil", n)
	}
	if got := root.Count(KindCircle); got != 2 {
		t.Errorf("Count(circle) = %d, want 2", got)
	}
	if got := root.Count(KindGroup); got != 2 {
		t.Errorf("Count(group) = %d, want 2", got)
	}
	if got := root.Leaves(); got != 3 {
		t.Errorf("Leaves() = %d, want 3", got)
	}
}

func TestClasses(t *testing.T) {
	n := Rect(0, 0, 1, 1, Style{}).WithClass("mark", "bar")
	if n.ClassName() != "mark bar" {
		t.Errorf("ClassName() = %q, want %q", n.ClassName(), "mark bar")
	}
	if !n.HasClass("bar") || n.HasClass("dot") {
		t.Errorf("HasClass mismatch for %v", n.Class)
	}
}
