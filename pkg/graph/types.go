package graph

import (
	"fmt"

	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// =============================================================================
// Diagram - Classified Network Serialization
// =============================================================================

// Diagram is the canonical serialization format for a classified selection.
type Diagram struct {
	RunID     string            `json:"run_id,omitempty"`
	Title     string            `json:"title,omitempty"`
	Selection string            `json:"selection"`
	Nodes     []Node            `json:"nodes"`
	Edges     []Edge            `json:"edges"`
	Markers   []waypoint.Marker `json:"markers,omitempty"`
	Stats     Stats             `json:"stats"`
}

// Node is a positioned waypoint.
type Node struct {
	ID   int64   `json:"id"`
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Flag string  `json:"flag"`
}

// Edge is a classified connection. Bidirectional edges have From < To and
// stand for both directions.
type Edge struct {
	From  int64  `json:"from"`
	To    int64  `json:"to"`
	Class string `json:"class"`
}

// Stats mirrors network.Stats in a JSON-friendly shape.
type Stats struct {
	Edges     int                `json:"edges"`
	SelfLoops int                `json:"self_loops"`
	Counts    map[string]int     `json:"counts"`
	Lengths   map[string]float64 `json:"lengths"`
	Bounds    [4]float64         `json:"bounds"` // minX, minZ, maxX, maxZ
}

// Option configures [FromClassification].
type Option func(*Diagram)

// WithRunID stamps the diagram with a run identifier.
func WithRunID(id string) Option { return func(d *Diagram) { d.RunID = id } }

// WithTitle sets the diagram title.
func WithTitle(title string) Option { return func(d *Diagram) { d.Title = title } }

// WithMarkers attaches the map markers that fall inside the selection.
func WithMarkers(markers []waypoint.Marker) Option {
	return func(d *Diagram) {
		d.Markers = append(d.Markers, markers...)
	}
}

// =============================================================================
// Classification → Diagram Conversion
// =============================================================================

// FromClassification converts a classification into its wire format.
func FromClassification(c *network.Classification, opts ...Option) Diagram {
	g := c.Graph()
	t := g.Table()
	sel := g.Selection()

	d := Diagram{Selection: sel.String()}
	for _, opt := range opts {
		opt(&d)
	}
	if len(d.Markers) > 0 {
		kept := d.Markers[:0]
		for _, m := range d.Markers {
			if sel.Contains(m.ID) {
				kept = append(kept, m)
			}
		}
		d.Markers = kept
	}

	ids := sel.IDs()
	d.Nodes = make([]Node, 0, len(ids))
	for _, id := range ids {
		w, ok := t.Get(id)
		if !ok {
			continue
		}
		d.Nodes = append(d.Nodes, Node{ID: int64(w.ID), X: w.X, Z: w.Z, Flag: w.Flag.String()})
	}

	for _, p := range c.Bidirectional {
		d.Edges = append(d.Edges, Edge{From: int64(p.Lo), To: int64(p.Hi), Class: network.ClassBidirectional.String()})
	}
	appendEdges := func(class network.Class, edges []network.Edge) {
		for _, e := range edges {
			d.Edges = append(d.Edges, Edge{From: int64(e.From), To: int64(e.To), Class: class.String()})
		}
	}
	appendEdges(network.ClassPriority, c.Priority)
	appendEdges(network.ClassSubPriority, c.SubPriority)
	appendEdges(network.ClassBackwards, c.Backwards)
	if d.Edges == nil {
		d.Edges = []Edge{}
	}

	st := network.ComputeStats(c)
	d.Stats = Stats{
		Edges:     st.Edges,
		SelfLoops: st.SelfLoops,
		Counts:    make(map[string]int, len(network.Classes)),
		Lengths:   make(map[string]float64, len(network.Classes)),
		Bounds:    [4]float64{st.Bounds.Min.X(), st.Bounds.Min.Y(), st.Bounds.Max.X(), st.Bounds.Max.Y()},
	}
	for _, class := range network.Classes {
		d.Stats.Counts[class.String()] = st.Count[class]
		d.Stats.Lengths[class.String()] = st.Length[class]
	}
	return d
}

// Validate checks that every edge references a node and names a known class.
func (d Diagram) Validate() error {
	nodes := make(map[int64]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if nodes[n.ID] {
			return fmt.Errorf("duplicate node %d", n.ID)
		}
		nodes[n.ID] = true
	}
	for _, e := range d.Edges {
		if !nodes[e.From] || !nodes[e.To] {
			return fmt.Errorf("edge %d->%d references an unknown node", e.From, e.To)
		}
		if _, ok := network.ParseClass(e.Class); !ok {
			return fmt.Errorf("edge %d->%d has unknown class %q", e.From, e.To, e.Class)
		}
	}
	return nil
}
