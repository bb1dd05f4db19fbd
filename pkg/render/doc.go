// Package render provides diagram rendering for classified waypoint networks.
//
// # Overview
//
// This package holds what both renderers share:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - The per-class [Palette] and its [Style] lookups
//   - Static map diagrams (in [diagram] subpackage)
//   - Graphviz node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := diagram.RenderSVG(c, diagram.WithTitle("Waypoints 23-36"))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Formats
//
// [ValidateFormat] and [ValidateFormats] check user-supplied output formats
// against [Formats].
package render
