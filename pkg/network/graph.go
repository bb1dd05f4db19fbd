package network

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// Edge is a directed connection from one waypoint to another.
type Edge struct {
	From waypoint.ID
	To   waypoint.ID
}

// Reverse returns the edge pointing the other way.
func (e Edge) Reverse() Edge { return Edge{From: e.To, To: e.From} }

// Pair returns the unordered pair the edge belongs to.
func (e Edge) Pair() Pair { return NewPair(e.From, e.To) }

// String formats the edge as "a→b".
func (e Edge) String() string { return fmt.Sprintf("%d→%d", e.From, e.To) }

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	return cmp.Compare(a.To, b.To)
}

// Pair is an unordered pair of waypoints, normalized so that Lo <= Hi.
type Pair struct {
	Lo waypoint.ID
	Hi waypoint.ID
}

// NewPair returns the normalized pair of a and b.
func NewPair(a, b waypoint.ID) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Lo: a, Hi: b}
}

// String formats the pair as "a↔b".
func (p Pair) String() string { return fmt.Sprintf("%d↔%d", p.Lo, p.Hi) }

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a.Lo, b.Lo); c != 0 {
		return c
	}
	return cmp.Compare(a.Hi, b.Hi)
}

// BuildStats records what [Build] discarded while collecting edges.
type BuildStats struct {
	Considered       int // outgoing entries of selected waypoints
	OutsideSelection int // targets outside the selection
	SelfLoops        int // targets equal to their source
	Duplicates       int // repeated targets collapsed into one edge
}

// Graph is the directed edge set of a selection. It is immutable once built.
type Graph struct {
	table     *waypoint.Table
	selection Selection
	edges     map[Edge]struct{}
	sorted    []Edge
	stats     BuildStats
}

// Build collects every directed edge whose source and target are both in sel.
//
// Self-loops are dropped and counted. Selected ids that do not exist in t
// produce an UNKNOWN_WAYPOINT error; use [Selection.Clip] beforehand to
// restrict a window to the ids that are present.
func Build(t *waypoint.Table, sel Selection) (*Graph, error) {
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "waypoint table is nil")
	}
	for _, id := range sel.IDs() {
		if !t.Has(id) {
			return nil, errors.New(errors.ErrCodeUnknownWaypoint, "selected waypoint %d does not exist", id)
		}
	}

	g := &Graph{
		table:     t,
		selection: sel,
		edges:     make(map[Edge]struct{}),
	}

	for _, w := range t.Waypoints() {
		if !sel.Contains(w.ID) {
			continue
		}
		for _, tgt := range w.Out {
			g.stats.Considered++
			switch {
			case !sel.Contains(tgt):
				g.stats.OutsideSelection++
				continue
			case tgt == w.ID:
				g.stats.SelfLoops++
				continue
			}
			e := Edge{From: w.ID, To: tgt}
			if _, dup := g.edges[e]; dup {
				g.stats.Duplicates++
				continue
			}
			g.edges[e] = struct{}{}
			g.sorted = append(g.sorted, e)
		}
	}
	slices.SortFunc(g.sorted, compareEdges)
	return g, nil
}

// Edges returns the directed edges sorted by (From, To).
func (g *Graph) Edges() []Edge { return slices.Clone(g.sorted) }

// Len returns the number of directed edges.
func (g *Graph) Len() int { return len(g.sorted) }

// Has reports whether the directed edge e exists.
func (g *Graph) Has(e Edge) bool {
	_, ok := g.edges[e]
	return ok
}

// Table returns the waypoint table the graph was built from.
func (g *Graph) Table() *waypoint.Table { return g.table }

// Selection returns the selection the graph is restricted to.
func (g *Graph) Selection() Selection { return g.selection }

// Stats returns what was discarded while building.
func (g *Graph) Stats() BuildStats { return g.stats }
