package network

import (
	"slices"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// Class is the usage category of a directed connection.
type Class int

const (
	// ClassBidirectional marks a connection whose reverse also exists.
	ClassBidirectional Class = iota
	// ClassBackwards marks a connection that is only driven in reverse.
	ClassBackwards
	// ClassPriority marks a one-way connection into a regular waypoint.
	ClassPriority
	// ClassSubPriority marks a one-way connection into a subpriority waypoint.
	ClassSubPriority
)

// Classes lists every class in rendering order.
var Classes = []Class{ClassBidirectional, ClassPriority, ClassSubPriority, ClassBackwards}

// String returns the wire name of the class.
func (c Class) String() string {
	switch c {
	case ClassBidirectional:
		return "bidirectional"
	case ClassBackwards:
		return "backwards"
	case ClassPriority:
		return "priority"
	case ClassSubPriority:
		return "subpriority"
	}
	return "unknown"
}

// ParseClass returns the class with the given wire name.
func ParseClass(s string) (Class, bool) {
	for _, c := range Classes {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// Classification is the result of [Classify]. All slices are sorted.
type Classification struct {
	Bidirectional []Pair
	Backwards     []Edge
	Priority      []Edge
	SubPriority   []Edge

	graph     *Graph
	pairs     map[Pair]struct{}
	backwards map[Edge]struct{}
}

// Classify partitions the edges of g.
//
// The rules run in this order:
//
//  1. Bidirectional: {a,b} when both a→b and b→a exist.
//  2. Backwards: a→b when a is not in b's declared incoming list. This runs
//     over every directed edge, independent of rule 1.
//  3. One-way: every edge that is neither backwards nor part of a
//     bidirectional pair.
//  4. One-way edges are split by the flag of their destination into
//     Priority (regular) and SubPriority.
//
// A destination flag outside {0, 1} is an INVALID_FLAG error.
func Classify(g *Graph) (*Classification, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph is nil")
	}
	t := g.Table()
	c := &Classification{
		graph:     g,
		pairs:     make(map[Pair]struct{}),
		backwards: make(map[Edge]struct{}),
	}
	edges := g.Edges()

	for _, e := range edges {
		if g.Has(e.Reverse()) {
			p := e.Pair()
			if _, seen := c.pairs[p]; !seen {
				c.pairs[p] = struct{}{}
				c.Bidirectional = append(c.Bidirectional, p)
			}
		}
	}

	for _, e := range edges {
		if !t.HasIncoming(e.To, e.From) {
			c.backwards[e] = struct{}{}
			c.Backwards = append(c.Backwards, e)
		}
	}

	for _, e := range edges {
		if _, back := c.backwards[e]; back {
			continue
		}
		if _, bi := c.pairs[e.Pair()]; bi {
			continue
		}
		flag, ok := t.Flag(e.To)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownWaypoint, "edge %s: destination does not exist", e)
		}
		switch flag {
		case waypoint.FlagRegular:
			c.Priority = append(c.Priority, e)
		case waypoint.FlagSubPriority:
			c.SubPriority = append(c.SubPriority, e)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFlag, "edge %s: destination flag %d is not 0 or 1", e, flag)
		}
	}

	slices.SortFunc(c.Bidirectional, comparePairs)
	return c, nil
}

// Graph returns the graph that was classified.
func (c *Classification) Graph() *Graph { return c.graph }

// ClassOf returns the class a directed edge was assigned. Backwards takes
// precedence over bidirectional, matching the rule order of [Classify].
func (c *Classification) ClassOf(e Edge) (Class, bool) {
	if !c.graph.Has(e) {
		return 0, false
	}
	if _, ok := c.backwards[e]; ok {
		return ClassBackwards, true
	}
	if _, ok := c.pairs[e.Pair()]; ok {
		return ClassBidirectional, true
	}
	flag, _ := c.graph.Table().Flag(e.To)
	if flag == waypoint.FlagSubPriority {
		return ClassSubPriority, true
	}
	return ClassPriority, true
}

// OneWay returns the priority and subpriority edges together, sorted.
func (c *Classification) OneWay() []Edge {
	out := append(slices.Clone(c.Priority), c.SubPriority...)
	slices.SortFunc(out, compareEdges)
	return out
}

// Counts returns the number of entries per class. Bidirectional counts pairs.
func (c *Classification) Counts() map[Class]int {
	return map[Class]int{
		ClassBidirectional: len(c.Bidirectional),
		ClassBackwards:     len(c.Backwards),
		ClassPriority:      len(c.Priority),
		ClassSubPriority:   len(c.SubPriority),
	}
}
