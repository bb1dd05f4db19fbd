// Package nodelink renders classified waypoint networks as Graphviz diagrams.
//
// # Overview
//
// Waypoints become fixed-size circle nodes pinned to their world positions
// (pos="x,y!"), so Graphviz only routes and styles the edges. Edges carry the
// class colors and dash patterns of [render.Palette].
//
// # Usage
//
// Convert a classification to DOT, then render to SVG with neato:
//
//	dot, err := nodelink.ToDOT(c, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG output convert that SVG with [render.ToPDF] and [render.ToPNG],
// which require librsvg (rsvg-convert).
package nodelink
