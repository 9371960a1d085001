package layout

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestFitEquirectangular(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	p, err := Fit(Equirectangular, bound, 100, 50)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   orb.Point
		want orb.Point
	}{
		{orb.Point{0, 0}, orb.Point{25, 50}},
		{orb.Point{10, 10}, orb.Point{75, 0}},
		{orb.Point{5, 5}, orb.Point{50, 25}},
	}
	for _, tt := range tests {
		got := p.Point(tt.in)
		if !approx(got.X(), tt.want.X()) || !approx(got.Y(), tt.want.Y()) {
			t.Errorf("Point(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFitMercator(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}
	p, err := Fit(Mercator, bound, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Point(orb.Point{0, 0}); !approx(got.X(), 50) || !approx(got.Y(), 50) {
		t.Errorf("Point(0, 0) = %v, want (50, 50)", got)
	}
	// Mercator stretches latitude, so the height is the binding side.
	if got := p.Point(orb.Point{0, 10}); math.Abs(got.Y()) > 1e-6 {
		t.Errorf("Point(0, 10).Y = %v, want 0", got.Y())
	}
	if got := p.Point(orb.Point{10, 0}); got.X() >= 100 || got.X() <= 50 {
		t.Errorf("Point(10, 0).X = %v, want inside (50, 100)", got.X())
	}
	if got := p.Point(orb.Point{0, 90}); math.IsInf(got.Y(), 0) || math.IsNaN(got.Y()) {
		t.Errorf("Point(0, 90).Y = %v, want finite", got.Y())
	}
}

func TestFitSinglePoint(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{3, 4}, Max: orb.Point{3, 4}}
	p, err := Fit(Equirectangular, bound, 80, 60)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Point(orb.Point{3, 4}); !approx(got.X(), 40) || !approx(got.Y(), 30) {
		t.Errorf("Point(3, 4) = %v, want (40, 30)", got)
	}
}

func TestParseProjection(t *testing.T) {
	tests := []struct {
		in      string
		want    Projection
		wantErr bool
	}{
		{"", Mercator, false},
		{"mercator", Mercator, false},
		{"equirectangular", Equirectangular, false},
		{"robinson", "", true},
	}
	for _, tt := range tests {
		got, err := ParseProjection(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseProjection(%q) = %v, %v; want %v, error %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
	if _, err := Fit("robinson", orb.Bound{}, 10, 10); err == nil {
		t.Error("Fit(robinson) = nil error, want error")
	}
}

func TestProjectorMultiPolygonAndOutlines(t *testing.T) {
	outer := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}
	hole := orb.Ring{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}}
	mp := orb.MultiPolygon{{outer, hole}, {}}

	p, err := Fit(Equirectangular, mp[0].Bound(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	got := p.MultiPolygon(mp)
	if len(got) != 2 || len(got[0]) != 2 {
		t.Fatalf("MultiPolygon shape = %v, want two polygons with a hole in the first", got)
	}
	if mp[0][0][1] != (orb.Point{10, 0}) {
		t.Errorf("input mutated: %v", mp[0][0])
	}
	if pt := got[0][0][1]; !approx(pt.X(), 100) || !approx(pt.Y(), 100) {
		t.Errorf("projected vertex = %v, want (100, 100)", pt)
	}

	rings := Outlines(got)
	if len(rings) != 1 || len(rings[0]) != len(outer) {
		t.Fatalf("Outlines = %v, want the outer ring only", rings)
	}
	if rings[0][2].X != 100 || rings[0][2].Y != 0 {
		t.Errorf("Outlines[0][2] = %+v, want (100, 0)", rings[0][2])
	}
}
