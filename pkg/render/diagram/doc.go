// Package diagram renders a classified waypoint selection as a static SVG map.
//
// Every selected waypoint is drawn as a marker with its id, connections are
// drawn per class using the [render.Palette] styles, and a legend explains
// the four classes. Both axes share one scale, so distances look the same
// horizontally and vertically, and z grows upward.
//
//	svg, err := diagram.RenderSVG(c,
//		diagram.WithTitle("Waypoints 23-36"),
//		diagram.WithSize(1200, 900),
//	)
package diagram
