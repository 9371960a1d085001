package data

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/stackviz/pkg/errors"
)

func sample() []Record {
	return []Record{
		{"year": Number(2001), "fruit": String("apple"), "n": Number(3)},
		{"year": Number(2001), "fruit": String("pear"), "n": Number(1)},
		{"year": Number(2002), "fruit": String("apple"), "n": Number(5)},
		{"year": Number(2003), "fruit": String("plum"), "n": Number(2)},
	}
}

func TestGetMissing(t *testing.T) {
	_, err := Get("missing")(Record{"a": Number(1)})
	if !errors.Is(err, errors.ErrCodeMissingField) {
		t.Fatalf("Get(missing) error = %v, want MISSING_FIELD", err)
	}
}

func TestSchemaFieldAndGet(t *testing.T) {
	ds := New([]Field{{Name: "n", Kind: KindNumber}}, sample())

	f, ok := ds.Field("n")
	if !ok || f.Kind != KindNumber {
		t.Fatalf("Field(n) = %+v, %v, want number field", f, ok)
	}
	got, err := Float(ds.Records[2], Get(f.Name))
	if err != nil || got != 5 {
		t.Errorf("Float(Get(n)) = %v, %v, want 5", got, err)
	}
}

func TestNumbersReportsRow(t *testing.T) {
	recs := sample()
	delete(recs[2], "n")

	_, err := Numbers(recs, Get("n"))
	if !errors.Is(err, errors.ErrCodeMissingField) {
		t.Fatalf("Numbers() error = %v, want MISSING_FIELD", err)
	}
	want := `MISSING_FIELD: accessor "n": missing field "n" in record 2`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestNumbersRejectsStrings(t *testing.T) {
	_, err := Numbers(sample(), Get("fruit"))
	if !errors.Is(err, errors.ErrCodeInvalidData) {
		t.Errorf("Numbers(fruit) error = %v, want INVALID_DATA", err)
	}
}

func TestDistinct(t *testing.T) {
	got, err := Distinct(sample(), Get("fruit"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"apple", "pear", "plum"}
	if len(got) != len(want) {
		t.Fatalf("Distinct() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Distinct()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExtent(t *testing.T) {
	lo, hi, ok, err := Extent(sample(), Get("n"))
	if err != nil || !ok {
		t.Fatalf("Extent() ok=%v err=%v", ok, err)
	}
	if lo != 1 || hi != 5 {
		t.Errorf("Extent() = [%v, %v], want [1, 5]", lo, hi)
	}

	_, _, ok, err = Extent(nil, Get("n"))
	if ok || err != nil {
		t.Errorf("Extent(nil) ok=%v err=%v, want false, nil", ok, err)
	}
}

func TestGroupByKeepsFirstAppearance(t *testing.T) {
	groups, err := GroupBy(sample(), Get("year"))
	if err != nil {
		t.Fatal(err)
	}
	keys := []string{"2001", "2002", "2003"}
	if len(groups) != len(keys) {
		t.Fatalf("len(groups) = %d, want %d", len(groups), len(keys))
	}
	for i, g := range groups {
		if g.Key != keys[i] {
			t.Errorf("groups[%d].Key = %v, want %v", i, g.Key, keys[i])
		}
	}
	if len(groups[0].Records) != 2 {
		t.Errorf("len(groups[0].Records) = %d, want 2", len(groups[0].Records))
	}
}

func TestRollup(t *testing.T) {
	tests := []struct {
		name  string
		value Accessor
		want  []float64
	}{
		{"count", nil, []float64{2, 1, 1}},
		{"sum", Get("n"), []float64{8, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, sums, err := Rollup(sample(), Get("fruit"), tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if keys[0] != "apple" {
				t.Errorf("keys[0] = %v, want apple", keys[0])
			}
			for i := range tt.want {
				if sums[i] != tt.want[i] {
					t.Errorf("sums[%d] = %v, want %v", i, sums[i], tt.want[i])
				}
			}
		})
	}
}

func TestValueText(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(2.5), "2.5"},
		{Number(2001), "2001"},
		{String("x"), "x"},
		{Time(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)), "2020-03-01"},
		{Null, ""},
	}
	for _, tt := range tests {
		if got := tt.v.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Number(2.5), `2.5`},
		{Number(math.NaN()), `null`},
		{String("a\"b"), `"a\"b"`},
		{Time(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)), `"2020-03-01T00:00:00Z"`},
		{Null, `null`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.v)
		if err != nil {
			t.Fatalf("Marshal(%#v): %v", tt.v, err)
		}
		if string(got) != tt.want {
			t.Errorf("Marshal(%#v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestDatasetRequireAndFilter(t *testing.T) {
	ds := New([]Field{{Name: "year", Kind: KindNumber}, {Name: "fruit", Kind: KindString}}, sample())

	if err := ds.Require("year", "fruit"); err != nil {
		t.Errorf("Require() = %v, want nil", err)
	}
	if err := ds.Require("price"); !errors.Is(err, errors.ErrCodeMissingField) {
		t.Errorf("Require(price) = %v, want MISSING_FIELD", err)
	}

	apples := ds.Filter(func(r Record) bool { return r["fruit"].Text() == "apple" })
	if apples.Len() != 2 {
		t.Errorf("Filter().Len() = %d, want 2", apples.Len())
	}
	if ds.Len() != 4 {
		t.Errorf("original Len() = %d, want 4", ds.Len())
	}
}

func TestSortBy(t *testing.T) {
	ds := New(nil, []Record{{"x": Number(3)}, {"x": Number(1)}, {"x": Number(2)}})
	ds.SortBy("x")
	for i, want := range []float64{1, 2, 3} {
		if got, _ := ds.Records[i]["x"].Float(); got != want {
			t.Errorf("Records[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestGraphValidate(t *testing.T) {
	tests := []struct {
		name string
		g    Graph
		code errors.Code
	}{
		{"valid", Graph{Nodes: []Node{{ID: "a"}, {ID: "b"}}, Links: []Link{{Source: "a", Target: "b"}}}, ""},
		{"duplicate", Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}}, errors.ErrCodeDuplicateKey},
		{"dangling", Graph{Nodes: []Node{{ID: "a"}}, Links: []Link{{Source: "a", Target: "z"}}}, errors.ErrCodeInvalidData},
		{"empty id", Graph{Nodes: []Node{{}}}, errors.ErrCodeInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q", got, tt.code)
			}
		})
	}
}
