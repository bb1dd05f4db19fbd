package network

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// Stats summarizes the geometry of a classification.
type Stats struct {
	Waypoints int
	Edges     int
	SelfLoops int
	Bounds    orb.Bound
	// Length is the summed horizontal length per class. Bidirectional pairs
	// are counted once.
	Length map[Class]float64
	Count  map[Class]int
}

// Bounds returns the (x, z) bounding box of the selected waypoints.
// The second result is false when nothing in the selection has a position.
func Bounds(t *waypoint.Table, sel Selection) (orb.Bound, bool) {
	var mp orb.MultiPoint
	for _, id := range sel.IDs() {
		if x, z, ok := t.Position(id); ok {
			mp = append(mp, orb.Point{x, z})
		}
	}
	if len(mp) == 0 {
		return orb.Bound{}, false
	}
	return mp.Bound(), true
}

// ComputeStats measures the classified connections of c.
func ComputeStats(c *Classification) Stats {
	g := c.Graph()
	t := g.Table()
	st := Stats{
		Waypoints: g.Selection().Len(),
		Edges:     g.Len(),
		SelfLoops: g.Stats().SelfLoops,
		Length:    make(map[Class]float64, len(Classes)),
		Count:     c.Counts(),
	}
	st.Bounds, _ = Bounds(t, g.Selection())

	length := func(a, b waypoint.ID) float64 {
		ax, az, _ := t.Position(a)
		bx, bz, _ := t.Position(b)
		return planar.Distance(orb.Point{ax, az}, orb.Point{bx, bz})
	}
	for _, p := range c.Bidirectional {
		st.Length[ClassBidirectional] += length(p.Lo, p.Hi)
	}
	for class, edges := range map[Class][]Edge{
		ClassBackwards:   c.Backwards,
		ClassPriority:    c.Priority,
		ClassSubPriority: c.SubPriority,
	} {
		for _, e := range edges {
			st.Length[class] += length(e.From, e.To)
		}
	}
	return st
}
