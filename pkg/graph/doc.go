// Package graph provides the serialization format for classified waypoint
// networks.
//
// This package defines the canonical wire format for adroutes output, used
// for `--format json`, the artifact cache and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between the analytical core
// and external formats:
//
//   - [Diagram]: serialization type (this package)
//   - pkg/network.Classification: internal classified edge sets
//   - pkg/waypoint.Table: internal waypoint positions and flags
//
// Use [FromClassification] to build a [Diagram] and [MarshalDiagram],
// [WriteDiagramFile] or [ReadDiagram] to move it across the boundary.
//
// # Wire Format
//
// Waypoints carry their horizontal position and flag, edges carry their
// class. Bidirectional pairs are written once with from < to:
//
//	{
//	  "run_id": "4b0c...",
//	  "selection": "23-36",
//	  "nodes": [{"id": 23, "x": 39.853, "z": -1677.771, "flag": "regular"}],
//	  "edges": [{"from": 23, "to": 30, "class": "backwards"}]
//	}
//
// Nodes are sorted by id and edges by (class, from, to) so the output is
// deterministic apart from run_id.
package graph
