package load

import (
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/stackviz/pkg/data"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"Jan 2006",
	"January 2006",
}

// Table builds a dataset from a header and string rows. Each column is
// coerced once: numeric if every non-empty cell parses as a float, time if
// every non-empty cell matches one known layout, string otherwise. Empty
// cells become nulls. Short rows are padded with nulls.
func Table(header []string, rows [][]string) *data.Dataset {
	fields := make([]data.Field, len(header))
	parsers := make([]func(string) data.Value, len(header))
	for j, name := range header {
		kind, parse := inferColumn(rows, j)
		fields[j] = data.Field{Name: strings.TrimSpace(name), Kind: kind}
		parsers[j] = parse
	}

	records := make([]data.Record, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		rec := make(data.Record, len(header))
		for j, f := range fields {
			cell := ""
			if j < len(row) {
				cell = strings.TrimSpace(row[j])
			}
			if cell == "" {
				rec[f.Name] = data.Null
				continue
			}
			rec[f.Name] = parsers[j](cell)
		}
		records = append(records, rec)
	}
	return data.New(fields, records)
}

func inferColumn(rows [][]string, j int) (data.Kind, func(string) data.Value) {
	cells := make([]string, 0, len(rows))
	for _, row := range rows {
		if j < len(row) {
			if c := strings.TrimSpace(row[j]); c != "" {
				cells = append(cells, c)
			}
		}
	}
	if len(cells) == 0 {
		return data.KindNull, func(string) data.Value { return data.Null }
	}

	numeric := true
	for _, c := range cells {
		if _, err := parseNumber(c); err != nil {
			numeric = false
			break
		}
	}
	if numeric {
		return data.KindNumber, func(s string) data.Value {
			f, _ := parseNumber(s)
			return data.Number(f)
		}
	}

	for _, layout := range timeLayouts {
		ok := true
		for _, c := range cells {
			if _, err := time.Parse(layout, c); err != nil {
				ok = false
				break
			}
		}
		if ok {
			return data.KindTime, func(s string) data.Value {
				t, _ := time.Parse(layout, s)
				return data.Time(t)
			}
		}
	}

	return data.KindString, data.String
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Scalar coerces a single cell the way [Table] would if it were the only
// value in its column.
func Scalar(s string) data.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return data.Null
	}
	_, parse := inferColumn([][]string{{s}}, 0)
	return parse(s)
}
