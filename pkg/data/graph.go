package data

import (
	"github.com/matzehuels/stackviz/pkg/errors"
)

// Node is a graph vertex.
type Node struct {
	ID    string  `json:"id"`
	Group string  `json:"group,omitempty"`
	Label string  `json:"label,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Link is a directed edge between two node IDs.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight,omitempty"`
}

// Graph is the input of network charts.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Validate checks that node IDs are unique and that every link endpoint exists.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidData, "node with empty id")
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeDuplicateKey, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, l := range g.Links {
		if !seen[l.Source] {
			return errors.New(errors.ErrCodeInvalidData, "link source %q is not a node", l.Source)
		}
		if !seen[l.Target] {
			return errors.New(errors.ErrCodeInvalidData, "link target %q is not a node", l.Target)
		}
	}
	return nil
}

// Records turns the node list into records with fields id, group, label and size.
func (g *Graph) Records() ([]Field, []Record) {
	fields := []Field{
		{Name: "id", Kind: KindString},
		{Name: "group", Kind: KindString},
		{Name: "label", Kind: KindString},
		{Name: "size", Kind: KindNumber},
	}
	recs := make([]Record, len(g.Nodes))
	for i, n := range g.Nodes {
		recs[i] = Record{
			"id":    String(n.ID),
			"group": String(n.Group),
			"label": String(n.Label),
			"size":  Number(n.Size),
		}
	}
	return fields, recs
}
