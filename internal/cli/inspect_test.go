package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/stackviz/pkg/data"
)

func TestSummarize(t *testing.T) {
	day := func(d int) data.Value { return data.Time(time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)) }
	ds := data.New(
		[]data.Field{{Name: "city", Kind: data.KindString}, {Name: "temp", Kind: data.KindNumber}, {Name: "day", Kind: data.KindTime}},
		[]data.Record{
			{"city": data.String("Oslo"), "temp": data.Number(-3), "day": day(2)},
			{"city": data.String("Rome"), "temp": data.Number(11), "day": day(1)},
			{"city": data.String("Oslo"), "temp": data.Value{}, "day": day(3)},
			{"city": data.String("Lima"), "temp": data.Number(19)},
			{"city": data.String("Pune"), "temp": data.Number(25)},
		},
	)

	got := summarize(ds)
	if len(got) != 3 {
		t.Fatalf("summaries = %d, want 3", len(got))
	}

	city := got[0]
	if city.Values != 5 || city.Nulls != 0 || city.Distinct != 4 {
		t.Errorf("city = %+v, want 5 values, 0 nulls, 4 distinct", city)
	}
	if !slices.Equal(city.Samples, []string{"Oslo", "Rome", "Lima"}) {
		t.Errorf("city samples = %v, want first three distinct", city.Samples)
	}
	if want := `"Oslo", "Rome", "Lima", …`; city.describe() != want {
		t.Errorf("city describe = %q, want %q", city.describe(), want)
	}

	temp := got[1]
	if temp.Values != 4 || temp.Nulls != 1 {
		t.Errorf("temp = %+v, want 4 values, 1 null", temp)
	}
	if lo, _ := temp.Min.Float(); lo != -3 {
		t.Errorf("temp min = %v, want -3", lo)
	}
	if hi, _ := temp.Max.Float(); hi != 25 {
		t.Errorf("temp max = %v, want 25", hi)
	}

	days := got[2]
	if days.Nulls != 2 || !days.Min.Equal(day(1)) || !days.Max.Equal(day(3)) {
		t.Errorf("day = %+v, want 2 nulls spanning Jan 1 to Jan 3", days)
	}
}

func TestPrintSchema(t *testing.T) {
	ds := data.New(
		[]data.Field{{Name: "fruit", Kind: data.KindString}, {Name: "n", Kind: data.KindNumber}},
		[]data.Record{{"fruit": data.String("apple"), "n": data.Number(3)}},
	)
	ds.Graph = &data.Graph{
		Nodes: []data.Node{{ID: "a", Group: "x"}, {ID: "b", Group: "x"}, {ID: "c", Group: "y"}},
		Links: []data.Link{{Source: "a", Target: "b"}},
	}

	var buf bytes.Buffer
	printSchema(&buf, "fruit.csv", ds)
	out := buf.String()
	for _, want := range []string{"fruit.csv", "1 rows · 2 fields", "Field", "fruit", "number", "3 nodes, 1 links, 2 groups"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectCommand(t *testing.T) {
	input := writeInput(t, "fruit.csv", fruitCSV)
	out, err := execute(t, "inspect", input)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "2 rows") || !strings.Contains(out, "plum") {
		t.Errorf("inspect output = %q, want row count and samples", out)
	}
}
