// Package pkg provides the core libraries for adroutes.
//
// # Overview
//
// adroutes reads the waypoint network of an AutoDrive config, classifies the
// connections between a selected set of waypoints and draws them. The pkg
// directory is organized into four areas:
//
//  1. Domain logic ([waypoint], [network])
//  2. Input and output ([io], [graph], [render])
//  3. Orchestration ([pipeline])
//  4. Infrastructure ([cache], [config], [errors], [observability], [buildinfo])
//
// # Architecture
//
// The typical data flow through adroutes:
//
//	AutoDrive XML or built-in sample
//	         ↓
//	    [io] / [waypoint] (decode the delimited waypoint lists)
//	         ↓
//	    [network] (select, build edges, classify)
//	         ↓
//	    [render] (diagram SVG, Graphviz node-link, PNG/PDF)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
//	tbl, _ := waypoint.Parse(waypoint.Sample())
//	sel, _ := network.Range(23, 36)
//	g, _ := network.Build(tbl, sel)
//	c, _ := network.Classify(g)
//	svg, _ := diagram.RenderSVG(c, diagram.WithTitle("Sample"))
//
// # Main Packages
//
// [waypoint] - Parses the comma and semicolon delimited waypoint lists into
// an id-keyed, immutable table. Ships the 36-waypoint sample network.
//
// [network] - Selections (id ranges, regions via an R-tree), the directed
// edge set of a selection and its classification into bidirectional,
// priority, subpriority and reverse-only connections.
//
// [io] - AutoDrive config import and export, including map markers.
//
// [render] - Palettes, output formats and SVG conversion. The
// [render/diagram] subpackage draws the equal-aspect plot, [render/nodelink]
// produces pinned Graphviz graphs.
//
// [graph] - JSON wire format for classified diagrams.
//
// [pipeline] - load → select → classify → render with artifact caching.
//
// [cache] - File, Redis and null artifact caches.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/network/...            # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [waypoint]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/waypoint
// [network]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/network
// [io]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/io
// [graph]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/render
// [render/diagram]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/render/diagram
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/adroutes/pkg/buildinfo
package pkg
