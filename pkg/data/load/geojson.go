package load

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/matzehuels/stackviz/pkg/data"
	"github.com/matzehuels/stackviz/pkg/errors"
)

// GeoJSON reads a FeatureCollection of Polygon and MultiPolygon features.
// Each feature becomes one record with an "id" field plus its scalar
// properties; the shapes are attached as [data.Geo]. The id is the feature
// id, else the "id" or "name" property, else the feature's position. Ids
// are always strings.
func GeoJSON(r io.Reader) (*data.Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "read geojson")
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "parse geojson")
	}

	var props []string
	seen := map[string]bool{"id": true}
	for _, f := range fc.Features {
		keys := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		props = append(props, keys...)
	}
	header := append([]string{"id"}, props...)

	features := make([]data.Feature, len(fc.Features))
	rows := make([][]string, len(fc.Features))
	for i, f := range fc.Features {
		key := featureKey(f, i)
		shape, err := multiPolygon(f.Geometry)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "feature %q", key)
		}
		features[i] = data.Feature{Key: key, Shape: shape}

		row := make([]string, len(header))
		row[0] = key
		for j, k := range props {
			row[j+1] = scalarText(f.Properties[k])
		}
		rows[i] = row
	}

	ds := Table(header, rows)
	// Keys such as FIPS codes look numeric but must match the shapes verbatim.
	ds.Fields[0].Kind = data.KindString
	for i, rec := range ds.Records {
		rec["id"] = data.String(features[i].Key)
	}
	ds.Geo = data.NewGeo(features)
	return ds, nil
}

func featureKey(f *geojson.Feature, i int) string {
	if s := scalarText(f.ID); s != "" {
		return s
	}
	for _, k := range []string{"id", "name"} {
		if s := scalarText(f.Properties[k]); s != "" {
			return s
		}
	}
	return strconv.Itoa(i)
}

func multiPolygon(g orb.Geometry) (orb.MultiPolygon, error) {
	switch g := g.(type) {
	case nil:
		return nil, nil
	case orb.Polygon:
		return orb.MultiPolygon{g}, nil
	case orb.MultiPolygon:
		return g, nil
	default:
		return nil, fmt.Errorf("unsupported geometry %s", g.GeoJSONType())
	}
}
