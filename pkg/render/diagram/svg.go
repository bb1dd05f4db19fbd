package diagram

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/adroutes/pkg/errors"
	"github.com/matzehuels/adroutes/pkg/network"
	"github.com/matzehuels/adroutes/pkg/render"
	"github.com/matzehuels/adroutes/pkg/waypoint"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1000.0
	DefaultHeight = 800.0
)

// Smallest accepted canvas. Both leave at least 100 px of plot area inside
// the margins.
const (
	MinWidth  = marginLeft + marginRight + 100
	MinHeight = marginTop + marginBottom + 100
)

const (
	marginLeft   = 70.0
	marginRight  = 30.0
	marginTop    = 60.0
	marginBottom = 60.0
	worldPad     = 2.0 // world units around the outermost waypoints
	markerRadius = 3.5
	fontSize     = 11.0
	legendRow    = 18.0
)

// Option configures [RenderSVG].
type Option func(*renderer)

type renderer struct {
	title   string
	width   float64
	height  float64
	palette render.Palette
	markers []waypoint.Marker
	labels  bool
	legend  bool
	xLabel  string
	zLabel  string
}

// WithTitle sets the heading drawn above the plot.
func WithTitle(s string) Option { return func(r *renderer) { r.title = s } }

// WithSize sets the canvas size in pixels. Non-positive values keep the default.
func WithSize(w, h float64) Option {
	return func(r *renderer) {
		if w > 0 {
			r.width = w
		}
		if h > 0 {
			r.height = h
		}
	}
}

// WithPalette overrides the class colors. Empty fields keep the default.
func WithPalette(p render.Palette) Option {
	return func(r *renderer) { r.palette = p.Merge(r.palette) }
}

// WithMarkers draws the names of map markers next to their waypoints.
func WithMarkers(m []waypoint.Marker) Option { return func(r *renderer) { r.markers = m } }

// WithLabels toggles the waypoint id labels. They are on by default.
func WithLabels(on bool) Option { return func(r *renderer) { r.labels = on } }

// WithLegend toggles the legend box. It is on by default.
func WithLegend(on bool) Option { return func(r *renderer) { r.legend = on } }

// WithAxisLabels sets the axis captions.
func WithAxisLabels(x, z string) Option {
	return func(r *renderer) { r.xLabel, r.zLabel = x, z }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		width:   DefaultWidth,
		height:  DefaultHeight,
		palette: render.DefaultPalette(),
		labels:  true,
		legend:  true,
		xLabel:  "X coordinate",
		zLabel:  "Z coordinate",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

type point struct{ x, y float64 }

// ValidateSize reports an INVALID_INPUT error when a canvas of w by h pixels
// leaves no room to plot inside the margins.
func ValidateSize(w, h float64) error {
	if w < MinWidth || h < MinHeight {
		return errors.New(errors.ErrCodeInvalidInput,
			"canvas %.0fx%.0f is too small (minimum %.0fx%.0f)", w, h, MinWidth, MinHeight)
	}
	return nil
}

// RenderSVG draws the classification as an SVG document.
// A waypoint without a position is an UNKNOWN_WAYPOINT error.
func RenderSVG(c *network.Classification, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	if err := ValidateSize(r.width, r.height); err != nil {
		return nil, err
	}
	if err := r.palette.Validate(); err != nil {
		return nil, err
	}

	g := c.Graph()
	tbl := g.Table()
	ids := g.Selection().IDs()

	world, ok := network.Bounds(tbl, g.Selection())
	if !ok && len(ids) > 0 {
		return nil, errors.New(errors.ErrCodeUnknownWaypoint, "waypoint %d does not exist", ids[0])
	}
	proj := NewProjection(world.Pad(worldPad),
		marginLeft, marginTop, r.width-marginLeft-marginRight, r.height-marginTop-marginBottom)

	pos := make(map[waypoint.ID]point, len(ids))
	for _, id := range ids {
		x, z, ok := tbl.Position(id)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownWaypoint, "waypoint %d does not exist", id)
		}
		px, py := proj.Point(x, z)
		pos[id] = point{px, py}
	}
	at := func(id waypoint.ID) (point, error) {
		p, ok := pos[id]
		if !ok {
			return point{}, errors.New(errors.ErrCodeUnknownWaypoint, "waypoint %d does not exist", id)
		}
		return p, nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	r.renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")
	r.renderFrame(&buf)

	buf.WriteString(`  <g class="edges">` + "\n")
	for _, p := range c.Bidirectional {
		if err := r.renderLine(&buf, network.ClassBidirectional, p.Lo, p.Hi, at); err != nil {
			return nil, err
		}
	}
	for _, set := range []struct {
		class network.Class
		edges []network.Edge
	}{
		{network.ClassPriority, c.Priority},
		{network.ClassSubPriority, c.SubPriority},
		{network.ClassBackwards, c.Backwards},
	} {
		for _, e := range set.edges {
			if err := r.renderLine(&buf, set.class, e.From, e.To, at); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteString("  </g>\n")

	r.renderWaypoints(&buf, ids, pos)
	r.renderMarkers(&buf, pos)
	if r.legend {
		r.renderLegend(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (r *renderer) renderDefs(buf *bytes.Buffer) {
	st := r.palette.Style(network.ClassBackwards)
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse">`+
		`<path d="M0,0 L10,5 L0,10" fill="none" stroke="%s" stroke-width="1.5"/></marker>`+"\n", st.Color)
	buf.WriteString("  </defs>\n")
}

func (r *renderer) renderFrame(buf *bytes.Buffer) {
	x0, y0 := marginLeft, marginTop
	w, h := r.width-marginLeft-marginRight, r.height-marginTop-marginBottom
	fmt.Fprintf(buf, `  <rect class="frame" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#cccccc"/>`+"\n", x0, y0, w, h)
	if r.title != "" {
		fmt.Fprintf(buf, `  <text class="title" x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="16" fill="%s">%s</text>`+"\n",
			r.width/2, marginTop/2+6, r.palette.Text, escape(r.title))
	}
	fmt.Fprintf(buf, `  <text class="axis-label" x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="12" fill="%s">%s</text>`+"\n",
		x0+w/2, r.height-marginBottom/3, r.palette.Text, escape(r.xLabel))
	cx, cy := marginLeft/3, y0+h/2
	fmt.Fprintf(buf, `  <text class="axis-label" x="%.1f" y="%.1f" text-anchor="middle" transform="rotate(-90 %.1f %.1f)" font-family="sans-serif" font-size="12" fill="%s">%s</text>`+"\n",
		cx, cy, cx, cy, r.palette.Text, escape(r.zLabel))
}

func (r *renderer) renderLine(buf *bytes.Buffer, class network.Class, from, to waypoint.ID, at func(waypoint.ID) (point, error)) error {
	a, err := at(from)
	if err != nil {
		return err
	}
	b, err := at(to)
	if err != nil {
		return err
	}
	st := r.palette.Style(class)
	var extra strings.Builder
	if st.Dash != "" {
		fmt.Fprintf(&extra, ` stroke-dasharray="%s"`, st.Dash)
	}
	if st.Arrow {
		// Stop short of the target marker so the arrow head stays visible.
		b = shorten(a, b, markerRadius+1)
		extra.WriteString(` marker-end="url(#arrow)"`)
	}
	fmt.Fprintf(buf, `    <line class="edge %s" data-from="%d" data-to="%d" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		class, from, to, a.x, a.y, b.x, b.y, st.Color, st.Width, extra.String())
	return nil
}

func (r *renderer) renderWaypoints(buf *bytes.Buffer, ids []waypoint.ID, pos map[waypoint.ID]point) {
	buf.WriteString(`  <g class="waypoints">` + "\n")
	for _, id := range ids {
		p := pos[id]
		fmt.Fprintf(buf, `    <circle id="wp-%d" cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>`+"\n",
			id, p.x, p.y, markerRadius, r.palette.Marker)
		if r.labels {
			fmt.Fprintf(buf, `    <text class="wp-label" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.0f" fill="%s">%d</text>`+"\n",
				p.x+markerRadius+2, p.y-markerRadius-2, fontSize, r.palette.Text, id)
		}
	}
	buf.WriteString("  </g>\n")
}

func (r *renderer) renderMarkers(buf *bytes.Buffer, pos map[waypoint.ID]point) {
	markers := waypoint.MarkersFor(r.markers, func(id waypoint.ID) bool {
		_, ok := pos[id]
		return ok
	})
	if len(markers) == 0 {
		return
	}
	buf.WriteString(`  <g class="map-markers">` + "\n")
	for _, id := range slices.Sorted(maps.Keys(markers)) {
		p := pos[id]
		fmt.Fprintf(buf, `    <text class="map-marker" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.0f" font-weight="bold" fill="%s">%s</text>`+"\n",
			p.x+markerRadius+2, p.y+markerRadius+fontSize, fontSize, r.palette.Text, escape(markers[id].Name))
	}
	buf.WriteString("  </g>\n")
}

func (r *renderer) renderLegend(buf *bytes.Buffer) {
	const boxW = 210.0
	x := r.width - marginRight - boxW - 8
	y := marginTop + 8
	h := legendRow*float64(len(network.Classes)) + 10
	buf.WriteString(`  <g class="legend">` + "\n")
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white" fill-opacity="0.85" stroke="#cccccc"/>`+"\n", x, y, boxW, h)
	for i, class := range network.Classes {
		st := r.palette.Style(class)
		ly := y + 14 + float64(i)*legendRow
		dash := ""
		if st.Dash != "" {
			dash = fmt.Sprintf(` stroke-dasharray="%s"`, st.Dash)
		}
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
			x+8, ly-4, x+38, ly-4, st.Color, st.Width, dash)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="12" fill="%s">%s</text>`+"\n",
			x+46, ly, r.palette.Text, escape(st.Label))
	}
	buf.WriteString("  </g>\n")
}

func shorten(a, b point, by float64) point {
	dx, dy := b.x-a.x, b.y-a.y
	d := math.Hypot(dx, dy)
	if d <= by {
		return b
	}
	f := (d - by) / d
	return point{a.x + dx*f, a.y + dy*f}
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
