package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/render"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// DefaultScale is the number of points per world unit.
const DefaultScale = 12.0

// Options configures node-link diagram rendering.
type Options struct {
	// Scale is points per world unit. Zero means DefaultScale.
	Scale float64
	// Palette overrides class colors. Empty fields keep the default.
	Palette render.Palette
	// Markers adds map marker names as external node labels.
	Markers []waypoint.Marker
	// Title is drawn as the graph label.
	Title string
	// HideLegend drops the class legend drawn right of the network.
	HideLegend bool
}

const (
	legendGap     = 24.0 // points between the network and the legend
	legendSegment = 36.0
	legendRow     = 18.0
)

// ToDOT converts a classification to Graphviz DOT with every selected
// waypoint pinned to its (x, z) position. A selected id without a position
// is an UNKNOWN_WAYPOINT error.
func ToDOT(c *network.Classification, opts Options) (string, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	pal := opts.Palette.Merge(render.DefaultPalette())
	if err := pal.Validate(); err != nil {
		return "", err
	}

	g := c.Graph()
	tbl := g.Table()
	sel := g.Selection()
	markers := waypoint.MarkersFor(opts.Markers, sel.Contains)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, width=0.3, fontsize=9, style=filled, fillcolor=white, color=%q];\n", pal.Marker)
	buf.WriteString("\n")

	for _, id := range sel.IDs() {
		x, z, ok := tbl.Position(id)
		if !ok {
			return "", errors.New(errors.ErrCodeUnknownWaypoint, "waypoint %d does not exist", id)
		}
		attrs := []string{
			fmt.Sprintf("label=%q", id.String()),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(x*scale), fmtCoord(z*scale)),
		}
		if m, ok := markers[id]; ok {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", m.Name))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, p := range c.Bidirectional {
		writeEdge(&buf, p.Lo.String(), p.Hi.String(), pal.Style(network.ClassBidirectional), network.ClassBidirectional)
	}
	for _, e := range c.Priority {
		writeEdge(&buf, e.From.String(), e.To.String(), pal.Style(network.ClassPriority), network.ClassPriority)
	}
	for _, e := range c.SubPriority {
		writeEdge(&buf, e.From.String(), e.To.String(), pal.Style(network.ClassSubPriority), network.ClassSubPriority)
	}
	for _, e := range c.Backwards {
		writeEdge(&buf, e.From.String(), e.To.String(), pal.Style(network.ClassBackwards), network.ClassBackwards)
	}

	if bound, ok := network.Bounds(tbl, sel); ok && !opts.HideLegend {
		writeLegend(&buf, pal, (bound.Max[0]*scale)+legendGap, bound.Max[1]*scale)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// writeLegend pins one sample edge per class, top row at (x, top).
func writeLegend(buf *bytes.Buffer, pal render.Palette, x, top float64) {
	buf.WriteString("\n  subgraph legend {\n")
	buf.WriteString("    node [shape=point, width=0.05, color=\"#888888\"];\n")
	for i, class := range network.Classes {
		y := top - float64(i)*legendRow
		a, b, text := "legend_"+class.String()+"_a", "legend_"+class.String()+"_b", "legend_"+class.String()
		fmt.Fprintf(buf, "    %q [pos=\"%s,%s!\"];\n", a, fmtCoord(x), fmtCoord(y))
		fmt.Fprintf(buf, "    %q [pos=\"%s,%s!\"];\n", b, fmtCoord(x+legendSegment), fmtCoord(y))
		fmt.Fprintf(buf, "    %q [shape=plaintext, fontsize=9, label=%q, pos=\"%s,%s!\"];\n",
			text, class.String(), fmtCoord(x+legendSegment+40), fmtCoord(y))
		buf.WriteString("  ")
		writeEdge(buf, a, b, pal.Style(class), class)
	}
	buf.WriteString("  }\n")
}

func writeEdge(buf *bytes.Buffer, from, to string, st render.Style, class network.Class) {
	attrs := []string{
		fmt.Sprintf("color=%q", st.Color),
		fmt.Sprintf("penwidth=%s", fmtCoord(st.Width)),
		fmt.Sprintf("class=%q", class.String()),
	}
	switch st.Dash {
	case render.DashDashed:
		attrs = append(attrs, "style=dashed")
	case render.DashDotted:
		attrs = append(attrs, "style=dotted")
	}
	switch {
	case class == network.ClassBidirectional:
		attrs = append(attrs, "dir=both", "arrowsize=0.5")
	case !st.Arrow:
		attrs = append(attrs, "arrowsize=0.5")
	}
	fmt.Fprintf(buf, "  %q -> %q [%s];\n", from, to, strings.Join(attrs, ", "))
}

func fmtCoord(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine, which
// keeps pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg header with a plain one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
