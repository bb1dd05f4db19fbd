package network

import (
	"cmp"
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// pointTolerance is the half-width of the box each waypoint occupies in the tree.
const pointTolerance = 1e-6

type spatialEntry struct {
	id  waypoint.ID
	pos orb.Point
	box rtreego.Rect
}

func (e *spatialEntry) Bounds() rtreego.Rect { return e.box }

// Hit is a waypoint returned by a spatial query.
type Hit struct {
	ID       waypoint.ID
	Distance float64
}

// SpatialIndex answers position queries over the (x, z) plane of a table.
type SpatialIndex struct {
	tree  *rtreego.Rtree
	table *waypoint.Table
}

// NewSpatialIndex indexes every waypoint of t by its horizontal position.
func NewSpatialIndex(t *waypoint.Table) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for _, w := range t.Waypoints() {
		p := rtreego.Point{w.X, w.Z}
		tree.Insert(&spatialEntry{
			id:  w.ID,
			pos: orb.Point{w.X, w.Z},
			box: p.ToRect(pointTolerance),
		})
	}
	return &SpatialIndex{tree: tree, table: t}
}

// Len returns the number of indexed waypoints.
func (si *SpatialIndex) Len() int { return si.tree.Size() }

// Nearest returns the waypoint closest to (x, z).
func (si *SpatialIndex) Nearest(x, z float64) (Hit, bool) {
	hits := si.NearestN(x, z, 1)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}

// NearestN returns up to k waypoints ordered by distance to (x, z).
// Equal distances are ordered by id, including ties at the k-th place.
func (si *SpatialIndex) NearestN(x, z float64, k int) []Hit {
	if k <= 0 || si.tree.Size() == 0 || !finite(x) || !finite(z) {
		return nil
	}
	q := orb.Point{x, z}
	hits := si.hits(q, si.tree.NearestNeighbors(min(k, si.tree.Size()), rtreego.Point{x, z}))
	if len(hits) < k {
		return hits
	}

	// Every waypoint as close as the k-th hit competes for the last places.
	radius := hits[k-1].Distance + pointTolerance
	box, err := rtreego.NewRect(rtreego.Point{x - radius, z - radius}, []float64{2 * radius, 2 * radius})
	if err != nil {
		return hits[:k]
	}
	var ring []rtreego.Spatial
	for _, s := range si.tree.SearchIntersect(box) {
		if e, ok := s.(*spatialEntry); ok && planar.Distance(q, e.pos) <= hits[k-1].Distance {
			ring = append(ring, s)
		}
	}
	if all := si.hits(q, ring); len(all) >= k {
		hits = all
	}
	return hits[:k]
}

// hits converts tree results to hits sorted by distance, then id.
func (si *SpatialIndex) hits(q orb.Point, found []rtreego.Spatial) []Hit {
	hits := make([]Hit, 0, len(found))
	for _, s := range found {
		e, ok := s.(*spatialEntry)
		if !ok {
			continue
		}
		hits = append(hits, Hit{ID: e.id, Distance: planar.Distance(q, e.pos)})
	}
	slices.SortFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return hits
}

// InRegion selects every waypoint whose position lies inside the box
// [minX, maxX] x [minZ, maxZ].
func (si *SpatialIndex) InRegion(minX, minZ, maxX, maxZ float64) (Selection, error) {
	for _, v := range []float64{minX, minZ, maxX, maxZ} {
		if !finite(v) {
			return Selection{}, errors.New(errors.ErrCodeInvalidSelection, "region bounds must be finite")
		}
	}
	if maxX < minX || maxZ < minZ {
		return Selection{}, errors.New(errors.ErrCodeInvalidSelection,
			"region max (%g, %g) is below min (%g, %g)", maxX, maxZ, minX, minZ)
	}
	// Widen by the point tolerance so degenerate boxes and points on the edge match.
	box, err := rtreego.NewRect(
		rtreego.Point{minX - pointTolerance, minZ - pointTolerance},
		[]float64{maxX - minX + 2*pointTolerance, maxZ - minZ + 2*pointTolerance},
	)
	if err != nil {
		return Selection{}, errors.Wrap(errors.ErrCodeInvalidSelection, err, "region")
	}
	bound := orb.Bound{Min: orb.Point{minX, minZ}, Max: orb.Point{maxX, maxZ}}
	sel := NewSelection()
	for _, s := range si.tree.SearchIntersect(box) {
		e, ok := s.(*spatialEntry)
		if ok && bound.Contains(e.pos) {
			sel.ids[e.id] = struct{}{}
		}
	}
	return sel, nil
}

// ParseRegion parses "minX,minZ,maxX,maxZ".
func ParseRegion(text string) (minX, minZ, maxX, maxZ float64, err error) {
	vals, err := waypoint.ParseFloats(text)
	if err != nil {
		return 0, 0, 0, 0, errors.Wrap(errors.ErrCodeInvalidSelection, err, "region %q", errors.Truncate(text, 40))
	}
	if len(vals) != 4 {
		return 0, 0, 0, 0, errors.New(errors.ErrCodeInvalidSelection,
			"region needs 4 values minX,minZ,maxX,maxZ, got %d", len(vals))
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
