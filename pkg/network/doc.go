// Package network builds and classifies the directed connection graph of a
// selected set of AutoDrive waypoints.
//
// # Overview
//
// The package is the analytical core of adroutes. It takes a decoded
// [waypoint.Table], restricts it to a [Selection] and answers one question
// for every directed connection between selected waypoints: how may a
// vehicle use it?
//
//   - [ClassBidirectional]: both a→b and b→a exist
//   - [ClassBackwards]: a→b exists but a is not declared as an incoming
//     source of b, so the segment is only driven in reverse
//   - [ClassPriority]: remaining one-way connection into a regular waypoint
//   - [ClassSubPriority]: remaining one-way connection into a subpriority
//     waypoint
//
// # Basic Usage
//
//	tbl, _ := waypoint.Parse(waypoint.Sample())
//	sel, _ := network.Range(23, 36)
//	g, _ := network.Build(tbl, sel)
//	c, _ := network.Classify(g)
//	fmt.Println(c.Backwards) // [23→30 30→31 31→32]
//
// # Classification Order
//
// [Classify] applies its rules in a fixed order. Backwards detection runs on
// the full directed edge set and is not gated on bidirectionality, so an edge
// whose reverse exists can still be reported as backwards. One-way edges are
// whatever is neither backwards nor part of a bidirectional pair.
//
// # Self-loops
//
// AutoDrive exports occasionally list a waypoint as its own target. [Build]
// drops such edges and counts them in [BuildStats.SelfLoops]; they never reach
// the classifier.
//
// # Spatial Queries
//
// [SpatialIndex] wraps an R-tree over waypoint positions for nearest-waypoint
// lookups and rectangular region selections.
package network
