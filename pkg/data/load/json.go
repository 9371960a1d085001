package load

import (
	"bytes"
	"encoding/json"
	"io"
	"slices"
	"strconv"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
)

// JSON reads an array of flat objects. A top-level FeatureCollection is
// decoded as GeoJSON and any other top-level object as a graph.
func JSON(r io.Reader) (*data.Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "read json")
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(trimmed, &head); err == nil && head.Type == "FeatureCollection" {
			return GeoJSON(bytes.NewReader(trimmed))
		}
		return Graph(bytes.NewReader(trimmed))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var objs []map[string]any
	if err := dec.Decode(&objs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "parse json")
	}

	var header []string
	seen := make(map[string]bool)
	for _, o := range objs {
		keys := make([]string, 0, len(o))
		for k := range o {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		for _, k := range keys {
			seen[k] = true
			header = append(header, k)
		}
	}

	rows := make([][]string, len(objs))
	for i, o := range objs {
		row := make([]string, len(header))
		for j, k := range header {
			row[j] = scalarText(o[k])
		}
		rows[i] = row
	}
	return Table(header, rows), nil
}

// scalarText renders a decoded scalar for the coercion pass. Nested values
// are not supported and render empty.
func scalarText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

type graphJSON struct {
	Nodes []data.Node `json:"nodes"`
	Links []data.Link `json:"links"`
	Edges []data.Link `json:"edges"`
}

// Graph reads {"nodes": [...], "links": [...]}. "edges" is accepted as an
// alias for "links". Node IDs must be unique and links must reference
// existing nodes.
func Graph(r io.Reader) (*data.Dataset, error) {
	var gj graphJSON
	if err := json.NewDecoder(r).Decode(&gj); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "parse graph")
	}
	if gj.Nodes == nil {
		return nil, errors.New(errors.ErrCodeInvalidData, "graph has no nodes member")
	}
	g := &data.Graph{Nodes: gj.Nodes, Links: append(gj.Links, gj.Edges...)}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	fields, recs := g.Records()
	ds := data.New(fields, recs)
	ds.Graph = g
	return ds, nil
}
