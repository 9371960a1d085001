package data

import "github.com/paulmach/orb"

// Feature is one map region in longitude/latitude.
type Feature struct {
	Key   string
	Shape orb.MultiPolygon
}

// Geo holds the shapes of a map dataset. Records reference a feature
// through their "id" field.
type Geo struct {
	Features []Feature
	index    map[string]int
}

// NewGeo indexes features by key. A repeated key keeps the last feature.
func NewGeo(features []Feature) *Geo {
	g := &Geo{Features: features, index: make(map[string]int, len(features))}
	for i, f := range features {
		g.index[f.Key] = i
	}
	return g
}

// Lookup returns the feature with the given key.
func (g *Geo) Lookup(key string) (Feature, bool) {
	i, ok := g.index[key]
	if !ok {
		return Feature{}, false
	}
	return g.Features[i], true
}

// Bound returns the longitude/latitude box around all features.
func (g *Geo) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, f := range g.Features {
		if len(f.Shape) == 0 {
			continue
		}
		if first {
			b, first = f.Shape.Bound(), false
			continue
		}
		b = b.Union(f.Shape.Bound())
	}
	return b
}
